package host

// State is the presence state of a host property.
type State uint8

const (
	// StateAbsent means the host node does not carry the property.
	StateAbsent State = iota
	// StateMixed means the property has heterogeneous sub-values (for example
	// a text run with several fonts) and no single value is available.
	StateMixed
	// StatePresent means a single value is available.
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateMixed:
		return "mixed"
	case StatePresent:
		return "present"
	}
	return "absent"
}

// Value is a host property that may be absent, mixed or present.
// The zero Value is absent.
type Value[T any] struct {
	state State
	v     T
}

// Some returns a present value.
func Some[T any](v T) Value[T] { return Value[T]{state: StatePresent, v: v} }

// Mixed returns a mixed value.
func Mixed[T any]() Value[T] { return Value[T]{state: StateMixed} }

// None returns an absent value.
func None[T any]() Value[T] { return Value[T]{} }

// Get returns the value and true only when it is present. Mixed and absent
// values both report false.
func (v Value[T]) Get() (T, bool) {
	if v.state != StatePresent {
		var zero T
		return zero, false
	}
	return v.v, true
}

// State returns the presence state.
func (v Value[T]) State() State { return v.state }

// IsMixed reports whether the value is mixed.
func (v Value[T]) IsMixed() bool { return v.state == StateMixed }

// IsPresent reports whether a single value is available.
func (v Value[T]) IsPresent() bool { return v.state == StatePresent }

// Or returns the value when present, otherwise def.
func (v Value[T]) Or(def T) T {
	if x, ok := v.Get(); ok {
		return x
	}
	return def
}

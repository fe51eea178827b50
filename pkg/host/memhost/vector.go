package memhost

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/srwiley/oksvg"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

type vectorMixin struct{ n *node }

func (m vectorMixin) VectorPaths() []host.VectorPath {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return slices.Clone(m.n.paths)
}

// SetVectorPaths replaces the geometry with paths. Every path must parse.
func (m vectorMixin) SetVectorPaths(paths []host.VectorPath) error {
	for i, p := range paths {
		switch p.WindingRule {
		case doc.WindingNonZero, doc.WindingEvenOdd, "NONE":
		default:
			return fmt.Errorf("path %d: invalid winding rule %q", i, p.WindingRule)
		}
		if err := ValidatePath(p.Data); err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.paths = slices.Clone(paths)
	m.n.network = host.VectorNetwork{}
	return nil
}

func (m vectorMixin) VectorNetwork() host.VectorNetwork {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.network
}

// SetVectorNetwork replaces the geometry with a network. Segment and loop
// indices must be in range.
func (m vectorMixin) SetVectorNetwork(net host.VectorNetwork) error {
	if err := validateNetwork(net); err != nil {
		return err
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.network = net
	m.n.paths = nil
	return nil
}

func validateNetwork(net host.VectorNetwork) error {
	if len(net.Vertices) == 0 {
		return fmt.Errorf("vector network has no vertices")
	}
	for i, s := range net.Segments {
		if s.Start < 0 || s.Start >= len(net.Vertices) || s.End < 0 || s.End >= len(net.Vertices) {
			return fmt.Errorf("segment %d: vertex index out of range", i)
		}
	}
	for i, r := range net.Regions {
		switch r.WindingRule {
		case doc.WindingNonZero, doc.WindingEvenOdd:
		default:
			return fmt.Errorf("region %d: invalid winding rule %q", i, r.WindingRule)
		}
		for _, loop := range r.Loops {
			for _, seg := range loop {
				if seg < 0 || seg >= len(net.Segments) {
					return fmt.Errorf("region %d: segment index %d out of range", i, seg)
				}
			}
		}
		for _, p := range r.Fills {
			if err := validatePaint(p); err != nil {
				return fmt.Errorf("region %d: %w", i, err)
			}
		}
	}
	return nil
}

// =============================================================================
// Path Data
// =============================================================================

// hostCommands are the path commands the host accepts. Coordinates are
// absolute only, and arcs must be flattened to curves first.
const hostCommands = "MLHVQCZ"

// ValidatePath checks SVG path data the way the host does. The data must
// parse as SVG path syntax, start with a move and use only [hostCommands],
// each followed by its arguments.
func ValidatePath(data string) error {
	if err := checkCommands(strings.TrimSpace(data)); err != nil {
		return err
	}
	var pc oksvg.PathCursor
	if err := pc.CompilePath(data); err != nil {
		return fmt.Errorf("path data: %w", err)
	}
	return nil
}

// checkCommands enforces the command subset. Argument arity and number
// syntax are left to the path compiler, which accepts a command with no
// arguments at all, so that case is rejected here.
func checkCommands(data string) error {
	if data == "" {
		return fmt.Errorf("empty path data")
	}
	if data[0] != 'M' {
		return fmt.Errorf("path must start with M, got %q", data[0])
	}
	var cmd rune
	hasArgs := false
	for _, r := range data {
		switch {
		case unicode.IsDigit(r):
			hasArgs = true
		case !unicode.IsLetter(r) || r == 'e' || r == 'E':
		default:
			if cmd != 0 && cmd != 'Z' && !hasArgs {
				return fmt.Errorf("command %c: missing arguments", cmd)
			}
			if unicode.IsLower(r) {
				return fmt.Errorf("relative path command %q not supported", r)
			}
			if !strings.ContainsRune(hostCommands, r) {
				return fmt.Errorf("unsupported path command %q", r)
			}
			cmd, hasArgs = r, false
		}
	}
	if cmd != 'Z' && !hasArgs {
		return fmt.Errorf("command %c: missing arguments", cmd)
	}
	return nil
}

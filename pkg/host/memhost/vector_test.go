package memhost

import (
	"testing"

	"github.com/matzehuels/scenedoc/pkg/host"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		data    string
		wantErr bool
	}{
		{"M 0 0 L 10 10 Z", false},
		{"M0,0L10,10L0,10Z", false},
		{"M 0 0 C 1 2 3 4 5 6 Q 1 1 2 2", false},
		{"M 0 0 L 1 1 2 2 H 5 V -3.5e2", false},
		{"M-1-2L3-4", false},
		{"", true},
		{"L 0 0", true},
		{"M 0", true},
		{"M 0 0 l 1 1", true},
		{"M 0 0 A 1 1 0 0 1 2 2", true},
		{"M 0 0 L x 1", true},
		{"M 0 0 L", true},
		{"M 0 0 L 1", true},
		{"M 0 0 Q 1 1 2", true},
		{"  M 0 0 L 1 1 Z  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			err := ValidatePath(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
		})
	}
}

func TestSetVectorGeometry(t *testing.T) {
	h := New()
	v := mustCreate(t, h, "VECTOR").(*Vector)

	if err := v.SetVectorPaths([]host.VectorPath{{WindingRule: "NONZERO", Data: "M 0 0 L 5 5 Z"}}); err != nil {
		t.Fatalf("SetVectorPaths() error: %v", err)
	}
	if err := v.SetVectorPaths([]host.VectorPath{{WindingRule: "SOMETIMES", Data: "M 0 0 Z"}}); err == nil {
		t.Error("expected error for unknown winding rule")
	}
	if got := len(v.VectorPaths()); got != 1 {
		t.Errorf("failed assignment should keep paths, got %d", got)
	}

	net := host.VectorNetwork{
		Vertices: []host.VectorVertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}},
		Segments: []host.VectorSegment{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 0}},
		Regions:  []host.VectorRegion{{WindingRule: "EVENODD", Loops: [][]int{{0, 1, 2}}}},
	}
	if err := v.SetVectorNetwork(net); err != nil {
		t.Fatalf("SetVectorNetwork() error: %v", err)
	}
	if len(v.VectorPaths()) != 0 {
		t.Error("network should replace paths")
	}

	bad := net
	bad.Segments = []host.VectorSegment{{Start: 0, End: 7}}
	if err := v.SetVectorNetwork(bad); err == nil {
		t.Error("expected error for out-of-range vertex")
	}
	if err := v.SetVectorNetwork(host.VectorNetwork{}); err == nil {
		t.Error("expected error for empty network")
	}
}

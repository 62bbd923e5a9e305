package flow

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/moneyflow/pkg/errors"
)

func TestGraph_Links(t *testing.T) {
	g := Graph{
		Labels:  []string{"A", "B", "C"},
		Sources: []int{0, 1, 0, -1},
		Targets: []int{1, 2, 99, 2},
		Values:  []float64{10, 5},
	}

	links := g.Links()
	if len(links) != 2 {
		t.Fatalf("Links() returned %d links, want 2", len(links))
	}
	if links[0] != (Link{Index: 0, Source: 0, Target: 1, Value: 10}) {
		t.Errorf("links[0] = %+v", links[0])
	}
	if links[1] != (Link{Index: 1, Source: 1, Target: 2, Value: 5}) {
		t.Errorf("links[1] = %+v", links[1])
	}
}

func TestGraph_Value(t *testing.T) {
	g := Graph{
		Labels:  []string{"A", "B"},
		Sources: []int{0, 0, 0, 0, 0},
		Targets: []int{1, 1, 1, 1, 1},
		Values:  []float64{4, math.NaN(), math.Inf(1), math.Inf(-1)},
	}

	tests := []struct {
		index int
		want  float64
	}{
		{0, 4},
		{1, 0}, // NaN
		{2, 0}, // +Inf
		{3, 0}, // -Inf
		{4, 0}, // missing
		{-1, 0},
	}
	for _, tt := range tests {
		if got := g.Value(tt.index); got != tt.want {
			t.Errorf("Value(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestGraph_LinkCountUsesShorterArray(t *testing.T) {
	g := Graph{Labels: []string{"A", "B"}, Sources: []int{0, 0, 1}, Targets: []int{1}}
	if got := g.LinkCount(); got != 1 {
		t.Errorf("LinkCount() = %d, want 1", got)
	}
	if g.ValidLink(1) {
		t.Error("ValidLink(1) = true for a link with no target")
	}
}

func TestGraph_Adjacency(t *testing.T) {
	g := Graph{
		Labels:  []string{"A", "B", "C"},
		Sources: []int{0, 0, 1, 5},
		Targets: []int{1, 2, 2, 0},
	}

	inDegree, outgoing := g.Adjacency()
	if !slices.Equal(inDegree, []int{0, 1, 2}) {
		t.Errorf("inDegree = %v, want [0 1 2]", inDegree)
	}
	if !slices.Equal(outgoing[0], []int{1, 2}) {
		t.Errorf("outgoing[0] = %v, want [1 2]", outgoing[0])
	}
	if len(outgoing[2]) != 0 {
		t.Errorf("outgoing[2] = %v, want empty", outgoing[2])
	}
	if !slices.Equal(g.Roots(), []int{0}) {
		t.Errorf("Roots() = %v, want [0]", g.Roots())
	}
}

func TestGraph_NodeValues(t *testing.T) {
	g := Graph{
		Labels:  []string{"A", "B", "C"},
		Sources: []int{0, 1},
		Targets: []int{1, 2},
		Values:  []float64{10, 10},
	}
	if got := g.NodeValues(); !slices.Equal(got, []float64{10, 20, 10}) {
		t.Errorf("NodeValues() = %v, want [10 20 10]", got)
	}
}

func TestGraph_NodeValuesSelfLoop(t *testing.T) {
	g := Graph{Labels: []string{"A"}, Sources: []int{0}, Targets: []int{0}, Values: []float64{3}}
	if got := g.NodeValues(); got[0] != 6 {
		t.Errorf("self-loop value = %v, want 6", got[0])
	}
}

func TestGraph_Validate(t *testing.T) {
	tests := []struct {
		name    string
		g       Graph
		wantErr bool
	}{
		{"empty", Graph{}, false},
		{"parallel", Graph{Labels: []string{"A", "B"}, Sources: []int{0}, Targets: []int{1}, Values: []float64{1}}, false},
		{"short values", Graph{Labels: []string{"A", "B"}, Sources: []int{0, 1}, Targets: []int{1, 0}}, false},
		{"out of range is not an error", Graph{Labels: []string{"A"}, Sources: []int{0}, Targets: []int{7}}, false},
		{"length mismatch", Graph{Sources: []int{0, 1}, Targets: []int{1}}, true},
		{"too many values", Graph{Sources: []int{0}, Targets: []int{1}, Values: []float64{1, 2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestGraph_Label(t *testing.T) {
	g := Graph{Labels: []string{"Salary"}}
	if g.Label(0) != "Salary" || g.Label(1) != "" || g.Label(-1) != "" {
		t.Errorf("Label lookups returned unexpected values")
	}
}

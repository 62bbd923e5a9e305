package flow

import (
	"math"

	"github.com/matzehuels/moneyflow/pkg/errors"
)

// Graph is a weighted directed graph given as parallel arrays.
// Link i runs from node Sources[i] to node Targets[i] carrying Values[i].
type Graph struct {
	Labels  []string
	Sources []int
	Targets []int
	Values  []float64
}

// Link is a well-formed link resolved from the parallel arrays.
type Link struct {
	Index  int // position in the input arrays
	Source int
	Target int
	Value  float64
}

// NodeCount returns the number of nodes, which is the number of labels.
func (g Graph) NodeCount() int { return len(g.Labels) }

// LinkCount returns the number of input links, well-formed or not.
// When Sources and Targets disagree in length the shorter one wins.
func (g Graph) LinkCount() int { return min(len(g.Sources), len(g.Targets)) }

// Label returns the label of node i, or "" when i is out of range.
func (g Graph) Label(i int) string {
	if i < 0 || i >= len(g.Labels) {
		return ""
	}
	return g.Labels[i]
}

// HasNode reports whether i indexes an existing node.
func (g Graph) HasNode(i int) bool { return i >= 0 && i < len(g.Labels) }

// ValidLink reports whether link i references two existing nodes.
func (g Graph) ValidLink(i int) bool {
	if i < 0 || i >= g.LinkCount() {
		return false
	}
	return g.HasNode(g.Sources[i]) && g.HasNode(g.Targets[i])
}

// Value returns the value of link i. Missing, NaN and infinite values read
// as zero.
func (g Graph) Value(i int) float64 {
	if i < 0 || i >= len(g.Values) {
		return 0
	}
	v := g.Values[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Links returns every well-formed link in input order.
// Malformed links are skipped, so Index may have gaps.
func (g Graph) Links() []Link {
	n := g.LinkCount()
	links := make([]Link, 0, n)
	for i := range n {
		if !g.ValidLink(i) {
			continue
		}
		links = append(links, Link{
			Index:  i,
			Source: g.Sources[i],
			Target: g.Targets[i],
			Value:  g.Value(i),
		})
	}
	return links
}

// Adjacency returns the in-degree of every node and the outgoing targets of
// every node, counting well-formed links only. Parallel links count once per
// link; targets keep input order.
func (g Graph) Adjacency() (inDegree []int, outgoing [][]int) {
	n := g.NodeCount()
	inDegree = make([]int, n)
	outgoing = make([][]int, n)
	for _, l := range g.Links() {
		inDegree[l.Target]++
		outgoing[l.Source] = append(outgoing[l.Source], l.Target)
	}
	return inDegree, outgoing
}

// Roots returns the indices of nodes with no incoming links, ascending.
func (g Graph) Roots() []int {
	inDegree, _ := g.Adjacency()
	var roots []int
	for i, d := range inDegree {
		if d == 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// NodeValues returns, per node, the sum of every link value where the node is
// source or target. Flow passing through a node is counted on both sides.
func (g Graph) NodeValues() []float64 {
	values := make([]float64, g.NodeCount())
	for _, l := range g.Links() {
		values[l.Source] += l.Value
		values[l.Target] += l.Value
	}
	return values
}

// Validate reports inputs that are not parallel arrays: Sources and Targets
// of different lengths, or more values than links. Out-of-range indices are
// not errors here; they are dropped during layout.
func (g Graph) Validate() error {
	if len(g.Sources) != len(g.Targets) {
		return errors.New(errors.ErrCodeInvalidInput,
			"sources and targets differ in length: %d != %d", len(g.Sources), len(g.Targets))
	}
	if len(g.Values) > len(g.Sources) {
		return errors.New(errors.ErrCodeInvalidInput,
			"more values than links: %d > %d", len(g.Values), len(g.Sources))
	}
	return nil
}

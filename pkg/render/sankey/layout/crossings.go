package layout

import "slices"

// CountCrossings returns the number of ribbon crossings between adjacent
// columns. Two links (s1,t1) and (s2,t2) spanning the same column gap cross
// when s1 is above s2 but t1 is below t2. Links spanning more than one gap,
// or pointing sideways or backward, are not counted.
//
// It is a diagnostic: Compute orders columns by value, not by crossings.
// Runs in O(E log V) using a Fenwick tree per column gap.
func CountCrossings(l Layout) int {
	rank := make(map[*Node]int, len(l.Nodes))
	for c := 0; c <= l.MaxColumn; c++ {
		for i, n := range l.Column(c) {
			rank[n] = i
		}
	}

	type edge struct{ upper, lower int }
	gaps := make(map[int][]edge)
	for _, lk := range l.Links {
		if lk.Target.Column != lk.Source.Column+1 {
			continue
		}
		c := lk.Source.Column
		gaps[c] = append(gaps[c], edge{rank[lk.Source], rank[lk.Target]})
	}

	crossings := 0
	for c, edges := range gaps {
		if len(edges) < 2 {
			continue
		}
		slices.SortFunc(edges, func(a, b edge) int {
			if a.upper != b.upper {
				return a.upper - b.upper
			}
			return a.lower - b.lower
		})

		fenwick := make([]int, len(l.Column(c+1))+1)
		total := 0
		for _, e := range edges {
			lessOrEqual := 0
			for q := e.lower + 1; q > 0; q -= q & (-q) {
				lessOrEqual += fenwick[q]
			}
			crossings += total - lessOrEqual

			total++
			for q := e.lower + 1; q < len(fenwick); q += q & (-q) {
				fenwick[q]++
			}
		}
	}
	return crossings
}

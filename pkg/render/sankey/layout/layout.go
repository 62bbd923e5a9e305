package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/flow/transform"
)

// Node is a positioned node. ID is the node's index in the input graph.
type Node struct {
	ID     int
	Label  string
	Value  float64
	Column int
	X, Y   float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the node's right edge.
func (n Node) Right() float64 { return n.X + n.Width }

// Bottom returns the y coordinate of the node's bottom edge.
func (n Node) Bottom() float64 { return n.Y + n.Height }

// CenterY returns the vertical center of the node.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// Link connects two nodes of the same Layout. Source and Target point into
// Layout.Nodes; Index is the link's position in the input arrays.
type Link struct {
	Source *Node
	Target *Node
	Value  float64
	Index  int
}

// Layout is the result of [Compute].
//
// Nodes are ordered column by column, largest value first within a column.
// Links keep input order with malformed links removed.
type Layout struct {
	Width, Height float64
	MaxColumn     int
	NodeWidth     float64
	MinNodeHeight float64
	Nodes         []Node
	Links         []Link
}

// Node returns the node with the given input index.
func (l *Layout) Node(id int) (*Node, bool) {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i], true
		}
	}
	return nil, false
}

// Column returns the nodes of column c, top to bottom.
func (l *Layout) Column(c int) []*Node {
	var nodes []*Node
	for i := range l.Nodes {
		if l.Nodes[i].Column == c {
			nodes = append(nodes, &l.Nodes[i])
		}
	}
	return nodes
}

// ColumnCount returns MaxColumn+1, or 0 for an empty layout.
func (l *Layout) ColumnCount() int {
	if len(l.Nodes) == 0 {
		return 0
	}
	return l.MaxColumn + 1
}

// Compute lays out g on a width×height canvas.
//
// Malformed links are dropped, missing values count as zero, and an empty
// graph yields an empty layout. Compute never fails.
func Compute(g flow.Graph, width, height float64, opts ...Option) Layout {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	l := Layout{
		Width:         width,
		Height:        height,
		NodeWidth:     cfg.nodeWidth,
		MinNodeHeight: cfg.minNodeHeight,
		Nodes:         []Node{},
		Links:         []Link{},
	}
	if g.NodeCount() == 0 {
		return l
	}

	columns := transform.AssignColumns(g)
	l.MaxColumn = transform.MaxColumn(columns)
	values := g.NodeValues()

	groups := make([][]int, l.MaxColumn+1)
	for id := range g.NodeCount() {
		c := columns[id]
		groups[c] = append(groups[c], id)
	}

	columnCount := float64(l.MaxColumn + 1)
	columnWidth := (width - (columnCount-1)*cfg.columnPadding) / columnCount

	l.Nodes = make([]Node, 0, g.NodeCount())
	for c, ids := range groups {
		slices.SortStableFunc(ids, func(a, b int) int {
			if values[a] != values[b] {
				return cmp.Compare(values[b], values[a])
			}
			return cmp.Compare(a, b)
		})

		scale := columnScale(ids, values, height, cfg)
		x := float64(c)*(columnWidth+cfg.columnPadding) + (columnWidth-cfg.nodeWidth)/2
		y := cfg.nodePadding
		for _, id := range ids {
			n := Node{
				ID:     id,
				Label:  g.Labels[id],
				Value:  values[id],
				Column: c,
				X:      x,
				Y:      y,
				Width:  cfg.nodeWidth,
				Height: max(values[id]*scale, cfg.minNodeHeight),
			}
			l.Nodes = append(l.Nodes, n)
			y = n.Bottom() + cfg.nodePadding
		}
	}

	index := make(map[int]int, len(l.Nodes))
	for i, n := range l.Nodes {
		index[n.ID] = i
	}
	for _, lk := range g.Links() {
		l.Links = append(l.Links, Link{
			Source: &l.Nodes[index[lk.Source]],
			Target: &l.Nodes[index[lk.Target]],
			Value:  lk.Value,
			Index:  lk.Index,
		})
	}
	return l
}

// columnScale returns the pixels-per-unit factor for one column. The budget
// is the larger of the column's total value and the space its nodes need at
// minimum height, so a column of zero-value nodes still scales to 1.
func columnScale(ids []int, values []float64, height float64, cfg config) float64 {
	count := float64(len(ids))
	var total float64
	for _, id := range ids {
		total += values[id]
	}
	minTotal := cfg.minNodeHeight*count + cfg.nodePadding*(count-1)
	effective := max(total, minTotal)
	if effective == 0 {
		return 1
	}
	return (height - cfg.nodePadding*(count+1)) / effective
}

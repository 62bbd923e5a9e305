package graph

import (
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/flow"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeSankey   = "sankey"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple   = "simple"
	StyleGradient = "gradient"
)

// =============================================================================
// Graph - Flow Graph Serialization
// =============================================================================

// Graph is the serialization format for flow graphs.
// Used for input files, API requests and cache keys.
type Graph struct {
	Labels   []string `json:"labels" yaml:"labels"`
	Sources  []int    `json:"sources" yaml:"sources"`
	Targets  []int    `json:"targets" yaml:"targets"`
	Values   []Amount `json:"values" yaml:"values"`
	Currency string   `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Validate rejects graphs that are not parallel arrays.
// Link indices outside the label range are accepted; layout drops them.
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

// ToFlow validates g and converts it to the in-memory form.
// Missing values are padded with zero.
func ToFlow(g Graph) (flow.Graph, error) {
	if err := g.Validate(); err != nil {
		return flow.Graph{}, err
	}
	values := make([]float64, len(g.Sources))
	for i, v := range g.Values {
		values[i] = v.Float64()
	}
	return flow.Graph{
		Labels:  append([]string(nil), g.Labels...),
		Sources: append([]int(nil), g.Sources...),
		Targets: append([]int(nil), g.Targets...),
		Values:  values,
	}, nil
}

// FromFlow converts an in-memory graph to its serialization format.
// Values are padded or trimmed to the link count.
func FromFlow(g flow.Graph) Graph {
	n := g.LinkCount()
	out := Graph{
		Labels:  append([]string{}, g.Labels...),
		Sources: append([]int{}, g.Sources[:n]...),
		Targets: append([]int{}, g.Targets[:n]...),
		Values:  make([]Amount, n),
	}
	for i := range n {
		out.Values[i] = NewAmount(g.Value(i))
	}
	return out
}

// =============================================================================
// Layout Elements
// =============================================================================

// Node is a positioned node in a sankey layout.
type Node struct {
	ID     int     `json:"id" bson:"id"`
	Label  string  `json:"label" bson:"label"`
	Value  float64 `json:"value" bson:"value"`
	Column int     `json:"column" bson:"column"`
	Zone   string  `json:"zone,omitempty" bson:"zone,omitempty"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Link is a routed link in a sankey layout. Source and Target are node IDs.
type Link struct {
	Index  int     `json:"index" bson:"index"`
	Source int     `json:"source" bson:"source"`
	Target int     `json:"target" bson:"target"`
	Value  float64 `json:"value" bson:"value"`
	Zone   string  `json:"zone,omitempty" bson:"zone,omitempty"`
	Path   string  `json:"path,omitempty" bson:"path,omitempty"`
}

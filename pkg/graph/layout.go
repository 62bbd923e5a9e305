package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the unified serialization format for all visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Sankey ("sankey"):
//	  - Nodes: positioned nodes with column, zone and value
//	  - Links: routed ribbons with SVG path data
//	  - MaxColumn, Curvature: layout parameters
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "dot")
//
// Shared fields: Width, Height, Style and Currency.
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common dimensions and style
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	Style    string  `json:"style,omitempty" bson:"style,omitempty"`
	Currency string  `json:"currency,omitempty" bson:"currency,omitempty"`

	// Sankey-specific
	MaxColumn int     `json:"max_column" bson:"max_column"`
	Curvature float64 `json:"curvature,omitempty" bson:"curvature,omitempty"`
	Nodes     []Node  `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Links     []Link  `json:"links,omitempty" bson:"links,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsSankey returns true if this is a sankey layout.
func (l *Layout) IsSankey() bool { return l.VizType == VizTypeSankey }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// An empty VizType defaults to sankey. Sankey links must reference nodes
// present in the layout; nodelink layouts must carry DOT.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeSankey
	}

	switch {
	case l.IsSankey():
		ids := make(map[int]bool, len(l.Nodes))
		for _, n := range l.Nodes {
			ids[n.ID] = true
		}
		for _, lk := range l.Links {
			if !ids[lk.Source] || !ids[lk.Target] {
				return Layout{}, fmt.Errorf("sankey link %d references unknown node", lk.Index)
			}
		}
	case l.IsNodelink():
		if l.DOT == "" {
			return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
		}
	default:
		return Layout{}, fmt.Errorf("unknown viz_type %q", l.VizType)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

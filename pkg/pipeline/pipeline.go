// Package pipeline provides the parse → layout → render pipeline for moneyflow.
//
// The CLI and the HTTP API both run through this package, so a graph
// renders the same way regardless of entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read a wire graph (JSON or YAML) and convert it to [flow.Graph]
//  2. Layout: assign columns and positions (sankey) or build DOT (nodelink)
//  3. Render: produce SVG, PNG, PDF or JSON artifacts
//
// Each stage can be run on its own. [Runner] adds caching of layouts and
// artifacts keyed by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    InputPath: "budget.json",
//	    Formats:   []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// [flow.Graph]: github.com/matzehuels/moneyflow/pkg/flow.Graph
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/moneyflow/pkg/cache"
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/route"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultCurvature is the default ribbon curvature.
	DefaultCurvature = route.DefaultCurvature

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeSankey

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeSankey:   true,
	graph.VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. InputData wins over InputPath; InputFormat defaults
	// to the path's extension, then JSON.
	InputPath   string `json:"input_path,omitempty"`
	InputData   []byte `json:"-"`
	InputFormat string `json:"input_format,omitempty"`

	// Layout options
	VizType string  `json:"viz_type,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`

	// Detailed adds column, zone and value to nodelink node labels.
	Detailed bool `json:"detailed,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Curvature  float64  `json:"curvature,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"`
	Tooltips   bool     `json:"tooltips,omitempty"`
	Currency   string   `json:"currency,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed flow graph.
	Graph flow.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the serializable layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	MaxColumn  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if style == "" {
		return errors.New(errors.ErrCodeInvalidStyle, "style is required")
	}
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, gradient)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: sankey, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and validates the result.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Curvature == 0 {
		o.Curvature = DefaultCurvature
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets layout and render defaults and validates them.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return errors.ValidateCurvature(o.Curvature)
}

// IsSankey returns true if this is a sankey visualization.
func (o *Options) IsSankey() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeSankey
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:   o.VizType,
		Width:     o.Width,
		Height:    o.Height,
		Style:     o.Style,
		Curvature: o.Curvature,
		Currency:  o.Currency,
		Detailed:  o.Detailed && o.IsNodelink(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		Curvature: o.Curvature,
		Labels:    !o.HideLabels,
		Tooltips:  o.Tooltips,
		Currency:  o.Currency,
	}
}

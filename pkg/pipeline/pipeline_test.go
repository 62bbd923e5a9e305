package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/moneyflow/pkg/cache"
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/graph"
)

const budgetJSON = `{
  "labels": ["Salary", "Budget", "Rent", "Food"],
  "sources": [0, 1, 1],
  "targets": [1, 2, 3],
  "values": [3000, 1800, 1200],
  "currency": "EUR"
}`

const budgetYAML = `labels: [Salary, Budget, Rent, Food]
sources: [0, 1, 1]
targets: [1, 2, 3]
values: [3000, 1800, 1200]
currency: EUR
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"gradient", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"sankey", false},
		{"nodelink", false},
		{"treemap", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsIsSankey(t *testing.T) {
	opts := Options{}
	if !opts.IsSankey() {
		t.Error("Empty VizType should be sankey")
	}
	if opts.IsNodelink() {
		t.Error("Empty VizType should not be nodelink")
	}

	opts.VizType = "nodelink"
	if opts.IsSankey() || !opts.IsNodelink() {
		t.Error("nodelink VizType should be nodelink only")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Curvature != DefaultCurvature {
		t.Errorf("Curvature should be %g, got %g", DefaultCurvature, opts.Curvature)
	}
}

func TestValidateForRenderIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	first := opts

	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.VizType != first.VizType || opts.Style != first.Style || opts.Width != first.Width {
		t.Errorf("Options changed on second call: %+v vs %+v", opts, first)
	}
}

func TestValidateForRenderRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad style", Options{Style: "neon"}, errors.ErrCodeInvalidStyle},
		{"bad viz type", Options{VizType: "treemap"}, errors.ErrCodeInvalidVizType},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidDimension},
		{"huge height", Options{Height: 1e9}, errors.ErrCodeInvalidDimension},
		{"curvature above one", Options{Curvature: 1.5}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForRender() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "budget.yaml")
	if err := os.WriteFile(yamlPath, []byte(budgetYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"json data", Options{InputData: []byte(budgetJSON)}},
		{"yaml data", Options{InputData: []byte(budgetYAML), InputFormat: graph.FormatYAML}},
		{"yaml file", Options{InputPath: yamlPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, g, err := Parse(tt.opts)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if wire.Currency != "EUR" {
				t.Errorf("Currency = %q, want EUR", wire.Currency)
			}
			if g.NodeCount() != 4 || g.LinkCount() != 3 {
				t.Errorf("got %d nodes %d links, want 4 and 3", g.NodeCount(), g.LinkCount())
			}
			if g.Value(0) != 3000 {
				t.Errorf("Value(0) = %g, want 3000", g.Value(0))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"missing file", Options{InputPath: filepath.Join(t.TempDir(), "nope.json")}, errors.ErrCodeFileNotFound},
		{"bad json", Options{InputData: []byte("{")}, errors.ErrCodeInvalidInput},
		{"ragged arrays", Options{InputData: []byte(`{"labels":["a"],"sources":[0],"targets":[]}`)}, errors.ErrCodeInvalidInput},
		{"unknown format", Options{InputData: []byte(budgetJSON), InputFormat: "xml"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGenerateLayoutSankey(t *testing.T) {
	_, g, err := Parse(Options{InputData: []byte(budgetJSON)})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Currency: "EUR"}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}

	gl, err := GenerateLayout(g, opts)
	if err != nil {
		t.Fatalf("GenerateLayout() error: %v", err)
	}
	if !gl.IsSankey() {
		t.Fatalf("VizType = %q, want sankey", gl.VizType)
	}
	if gl.MaxColumn != 2 {
		t.Errorf("MaxColumn = %d, want 2", gl.MaxColumn)
	}
	if len(gl.Nodes) != 4 || len(gl.Links) != 3 {
		t.Fatalf("got %d nodes %d links, want 4 and 3", len(gl.Nodes), len(gl.Links))
	}
	wantZones := []string{"source", "pivot", "sink", "sink"}
	for i, n := range gl.Nodes {
		if n.Zone != wantZones[i] {
			t.Errorf("node %d zone = %q, want %q", i, n.Zone, wantZones[i])
		}
	}
	for _, l := range gl.Links {
		if !strings.HasPrefix(l.Path, "M") {
			t.Errorf("link %d path = %q, want SVG path data", l.Index, l.Path)
		}
	}
	if gl.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", gl.Currency)
	}
}

func TestGenerateLayoutNodelink(t *testing.T) {
	_, g, err := Parse(Options{InputData: []byte(budgetJSON)})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{VizType: graph.VizTypeNodelink}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}

	gl, err := GenerateLayout(g, opts)
	if err != nil {
		t.Fatalf("GenerateLayout() error: %v", err)
	}
	if !gl.IsNodelink() || gl.Engine != "dot" {
		t.Errorf("got viz %q engine %q, want nodelink/dot", gl.VizType, gl.Engine)
	}
	if !strings.Contains(gl.DOT, "n0 -> n1") {
		t.Errorf("DOT missing edge n0 -> n1:\n%s", gl.DOT)
	}
	if strings.Contains(gl.DOT, "column: ") {
		t.Errorf("plain DOT has detailed labels:\n%s", gl.DOT)
	}

	opts.Detailed = true
	detailed, err := GenerateLayout(g, opts)
	if err != nil {
		t.Fatalf("GenerateLayout(detailed) error: %v", err)
	}
	for _, want := range []string{"column: 0", "zone: source", "value: 3,000.00"} {
		if !strings.Contains(detailed.DOT, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, detailed.DOT)
		}
	}
	if opts.LayoutKeyOpts() == (&Options{VizType: graph.VizTypeNodelink}).LayoutKeyOpts() {
		t.Error("Detailed should change the nodelink layout cache key")
	}
}

func TestRenderFromLayout(t *testing.T) {
	_, g, err := Parse(Options{InputData: []byte(budgetJSON)})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	gl, err := GenerateLayout(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromLayout(context.Background(), gl, nil, Options{Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("RenderFromLayout() error: %v", err)
	}
	svg := artifacts[FormatSVG]
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("SVG output does not start with <svg: %.40q", svg)
	}
	if !bytes.Contains(svg, []byte("Salary")) {
		t.Error("SVG output missing node label")
	}

	decoded, err := graph.UnmarshalLayout(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("JSON artifact does not decode: %v", err)
	}
	if len(decoded.Nodes) != len(gl.Nodes) {
		t.Errorf("JSON artifact has %d nodes, want %d", len(decoded.Nodes), len(gl.Nodes))
	}
}

func TestRenderFromLayoutHideLabels(t *testing.T) {
	_, g, err := Parse(Options{InputData: []byte(budgetJSON)})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{}
	_ = opts.ValidateForRender()
	gl, err := GenerateLayout(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromLayout(context.Background(), gl, nil, Options{HideLabels: true})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(artifacts[FormatSVG], []byte(">Salary<")) {
		t.Error("HideLabels should suppress node labels")
	}
}

func TestRenderFromLayoutNodelinkNeedsGraph(t *testing.T) {
	_, g, err := Parse(Options{InputData: []byte(budgetJSON)})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{}
	_ = opts.ValidateForRender()
	gl, err := GenerateLayout(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	_, err = RenderFromLayout(context.Background(), gl, nil, Options{VizType: graph.VizTypeNodelink})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nodelink without graph: err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderFromLayoutDataInvalid(t *testing.T) {
	_, err := RenderFromLayoutData(context.Background(), []byte("not json"), nil, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{InputData: []byte(budgetJSON), Formats: []string{FormatSVG}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", first.CacheInfo)
	}
	if first.Stats.NodeCount != 4 || first.Stats.LinkCount != 3 || first.Stats.MaxColumn != 2 {
		t.Errorf("unexpected stats: %+v", first.Stats)
	}
	if first.Layout.Currency != "EUR" {
		t.Errorf("Layout currency = %q, want EUR from the input graph", first.Layout.Currency)
	}
	if first.GraphHash == "" {
		t.Error("GraphHash should be set")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("Refresh should bypass cache reads: %+v", third.CacheInfo)
	}
}

func TestRunnerSharesCacheAcrossInputFormats(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, err := runner.Execute(ctx, Options{InputData: []byte(budgetJSON)}); err != nil {
		t.Fatal(err)
	}
	res, err := runner.Execute(ctx, Options{InputData: []byte(budgetYAML), InputFormat: graph.FormatYAML})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LayoutHit {
		t.Error("equal graphs in JSON and YAML should share the layout cache entry")
	}
}

func TestRunnerRejectsInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		InputData: []byte(budgetJSON),
		Formats:   []string{"gif"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

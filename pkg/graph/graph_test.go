package graph

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/flow"
)

func TestUnmarshalGraph_JSON(t *testing.T) {
	data := []byte(`{
		"labels": ["Salary", "Budget", "Rent"],
		"sources": [0, 1, 1],
		"targets": [1, 2, 9],
		"values": [3000, "1200.50", null],
		"currency": "EUR"
	}`)

	g, err := UnmarshalGraph(data, FormatJSON)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if len(g.Labels) != 3 || g.Currency != "EUR" {
		t.Errorf("labels = %v, currency = %q", g.Labels, g.Currency)
	}
	want := []float64{3000, 1200.5, 0}
	for i, w := range want {
		if got := g.Values[i].Float64(); got != w {
			t.Errorf("Values[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestUnmarshalGraph_YAML(t *testing.T) {
	data := []byte(`
labels: [Salary, Budget, Rent]
sources: [0, 1]
targets: [1, 2]
values:
  - 3000
  - ~
`)
	g, err := UnmarshalGraph(data, FormatYAML)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if got := g.Values[0].Float64(); got != 3000 {
		t.Errorf("Values[0] = %v, want 3000", got)
	}
	if got := g.Values[1].Float64(); got != 0 {
		t.Errorf("Values[1] = %v, want 0", got)
	}
}

func TestUnmarshalGraph_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   string
		wantCode errors.Code
	}{
		{"bad json", `{"labels": [`, FormatJSON, errors.ErrCodeInvalidInput},
		{"bad amount", `{"sources":[0],"targets":[1],"values":["abc"]}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"length mismatch", `{"sources":[0,1],"targets":[1]}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"too many values", `{"sources":[0],"targets":[1],"values":[1,2]}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"unknown format", `{}`, "toml", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalGraph([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantCode != "" && !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestToFlow_PadsValues(t *testing.T) {
	g := Graph{
		Labels:  []string{"A", "B", "C"},
		Sources: []int{0, 1},
		Targets: []int{1, 2},
		Values:  []Amount{NewAmount(7)},
	}

	fg, err := ToFlow(g)
	if err != nil {
		t.Fatalf("ToFlow: %v", err)
	}
	if len(fg.Values) != 2 || fg.Values[0] != 7 || fg.Values[1] != 0 {
		t.Errorf("Values = %v, want [7 0]", fg.Values)
	}
}

func TestFromFlow_RoundTrip(t *testing.T) {
	fg := flow.Graph{
		Labels:  []string{"Salary", "Budget"},
		Sources: []int{0},
		Targets: []int{1},
		Values:  []float64{1234.5},
	}

	back, err := ToFlow(FromFlow(fg))
	if err != nil {
		t.Fatalf("ToFlow: %v", err)
	}
	if back.Labels[1] != "Budget" || back.Sources[0] != 0 || back.Targets[0] != 1 {
		t.Errorf("structure changed: %+v", back)
	}
	if back.Values[0] != 1234.5 {
		t.Errorf("value = %v, want 1234.5", back.Values[0])
	}
}

func TestWriteGraph_NumbersUnquoted(t *testing.T) {
	var buf bytes.Buffer
	g := Graph{Labels: []string{"A", "B"}, Sources: []int{0}, Targets: []int{1}, Values: []Amount{NewAmount(12.5)}}
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	if strings.Contains(buf.String(), `"12.5"`) || !strings.Contains(buf.String(), "12.5") {
		t.Errorf("value not written as a bare number:\n%s", buf.String())
	}
}

func TestGraphFile_RoundTrip(t *testing.T) {
	g := Graph{
		Labels:  []string{"Salary", "Rent"},
		Sources: []int{0},
		Targets: []int{1},
		Values:  []Amount{NewAmount(900)},
	}

	for _, name := range []string{"flow.json", "flow.yaml", "flow.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteGraphFile(g, path); err != nil {
				t.Fatalf("WriteGraphFile: %v", err)
			}
			got, err := ReadGraphFile(path)
			if err != nil {
				t.Fatalf("ReadGraphFile: %v", err)
			}
			if len(got.Labels) != 2 || got.Values[0].Float64() != 900 {
				t.Errorf("round trip = %+v", got)
			}
		})
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  string
		labels  int
		wantErr errors.Code
	}{
		{"json", `{"labels":["A","B"],"sources":[0],"targets":[1],"values":[5]}`, FormatJSON, 2, ""},
		{"yaml", "labels: [A, B]\nsources: [0]\ntargets: [1]\nvalues: [5]\n", FormatYAML, 2, ""},
		{"default json", `{"labels":["A"]}`, "", 1, ""},
		{"bad json", `{"labels":`, FormatJSON, 0, errors.ErrCodeInvalidInput},
		{"unknown format", `labels = ["A"]`, "toml", 0, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input), tt.format)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGraph: %v", err)
			}
			if len(g.Labels) != tt.labels {
				t.Errorf("labels = %v, want %d", g.Labels, tt.labels)
			}
		})
	}
}

func TestReadGraphFile_Missing(t *testing.T) {
	_, err := ReadGraphFile(filepath.Join(t.TempDir(), "nope.json"))
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]string{
		"a.yaml":     FormatYAML,
		"a.YML":      FormatYAML,
		"a.json":     FormatJSON,
		"a":          FormatJSON,
		"dir.yaml/x": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNewAmount_NonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := NewAmount(f).Float64(); got != 0 {
			t.Errorf("NewAmount(%v) = %v, want 0", f, got)
		}
	}
}

package route

import (
	"strings"
	"testing"

	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
)

func TestRoute(t *testing.T) {
	src := &layout.Node{X: 0, Y: 10, Width: 20, Height: 100}
	dst := &layout.Node{X: 120, Y: 50, Width: 20, Height: 40}

	r := Route(src, dst, 7, DefaultCurvature)

	if r.Start != (Point{20, 10}) {
		t.Errorf("Start = %v, want {20 10}", r.Start)
	}
	if r.End != (Point{120, 50}) {
		t.Errorf("End = %v, want {120 50}", r.End)
	}
	// dx = 100
	if r.C1 != (Point{60, 10}) {
		t.Errorf("C1 = %v, want {60 10}", r.C1)
	}
	if r.C2 != (Point{80, 50}) {
		t.Errorf("C2 = %v, want {80 50}", r.C2)
	}
	if r.SourceHeight != 100 || r.TargetHeight != 40 || r.Value != 7 {
		t.Errorf("ribbon = %+v", r)
	}
}

func TestRibbon_Path(t *testing.T) {
	src := &layout.Node{X: 0, Y: 10, Width: 20, Height: 100}
	dst := &layout.Node{X: 120, Y: 50, Width: 20, Height: 40}

	got := Route(src, dst, 7, DefaultCurvature).Path()
	want := "M20,10C60,10 80,50 120,50L120,90C80,90 60,110 20,110Z"
	if got != want {
		t.Errorf("Path() =\n  %s\nwant\n  %s", got, want)
	}

	if n := strings.Count(got, "C"); n != 2 {
		t.Errorf("path has %d cubic segments, want 2", n)
	}
	if !strings.HasSuffix(got, "Z") {
		t.Error("path is not closed")
	}
}

func TestRibbon_PathRounds(t *testing.T) {
	r := Ribbon{Start: Point{1.0 / 3, 0}, End: Point{2, 0}}
	if got := r.Path(); !strings.HasPrefix(got, "M0.33,0C") {
		t.Errorf("Path() = %s, want coordinates rounded to two decimals", got)
	}
}

func TestRoute_ZeroCurvature(t *testing.T) {
	src := &layout.Node{X: 0, Y: 0, Width: 10, Height: 10}
	dst := &layout.Node{X: 110, Y: 30, Width: 10, Height: 10}
	r := Route(src, dst, 1, 0)
	if r.C1 != r.Start || r.C2 != r.End {
		t.Errorf("zero curvature should put control points on anchors: %+v", r)
	}
}

func TestRibbon_Midpoint(t *testing.T) {
	r := Ribbon{
		Start: Point{0, 0}, C1: Point{40, 0}, C2: Point{60, 100}, End: Point{100, 100},
		SourceHeight: 20, TargetHeight: 20,
	}
	m := r.Midpoint()
	if m.X != 50 || m.Y != 60 {
		t.Errorf("Midpoint() = %v, want {50 60}", m)
	}
}

func TestLinks(t *testing.T) {
	g := flow.Graph{
		Labels:  []string{"A", "B", "C"},
		Sources: []int{0, 7, 1},
		Targets: []int{1, 0, 2},
		Values:  []float64{3, 4, 5},
	}
	l := layout.Compute(g, 600, 400)

	ribbons := Links(l, DefaultCurvature)
	if len(ribbons) != 2 {
		t.Fatalf("len(ribbons) = %d, want 2", len(ribbons))
	}
	if ribbons[0].Index != 0 || ribbons[1].Index != 2 {
		t.Errorf("indices = %d, %d, want 0, 2", ribbons[0].Index, ribbons[1].Index)
	}
	for i, r := range ribbons {
		lk := l.Links[i]
		if r.Start.X != lk.Source.Right() || r.End.X != lk.Target.X {
			t.Errorf("ribbon %d anchors %v -> %v do not match node edges", i, r.Start, r.End)
		}
		if r.End.X <= r.Start.X {
			t.Errorf("ribbon %d runs backward", i)
		}
	}
}

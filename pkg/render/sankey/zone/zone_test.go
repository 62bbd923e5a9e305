package zone

import "testing"

func TestClassifyNode(t *testing.T) {
	tests := []struct {
		column, maxColumn int
		want              Zone
	}{
		{0, 0, Source},
		{0, 1, Source},
		{1, 1, Sink},
		{0, 2, Source},
		{1, 2, Pivot},
		{2, 2, Sink},
		{1, 3, Pivot},
		{2, 3, Sink},
		{3, 3, Sink},
		{0, 4, Source},
		{1, 4, Other},
		{2, 4, Pivot},
		{3, 4, Sink},
		{4, 4, Sink},
		{2, 6, Other},
	}

	for _, tt := range tests {
		if got := ClassifyNode(tt.column, tt.maxColumn); got != tt.want {
			t.Errorf("ClassifyNode(%d, %d) = %v, want %v", tt.column, tt.maxColumn, got, tt.want)
		}
	}
}

func TestClassifyLink(t *testing.T) {
	tests := []struct {
		src, dst, maxColumn int
		want                Zone
	}{
		{0, 1, 4, Source},
		{1, 2, 4, Other},
		{2, 3, 4, Sink},
		{0, 4, 4, Sink},
		{0, 1, 2, Other},
		{1, 2, 2, Sink},
		{0, 1, 1, Sink},
		{0, 0, 0, Other},
		{0, 1, 3, Source},
		{1, 2, 3, Sink},
	}

	for _, tt := range tests {
		if got := ClassifyLink(tt.src, tt.dst, tt.maxColumn); got != tt.want {
			t.Errorf("ClassifyLink(%d, %d, %d) = %v, want %v", tt.src, tt.dst, tt.maxColumn, got, tt.want)
		}
	}
}

func TestZone_String(t *testing.T) {
	for _, z := range []Zone{Other, Source, Pivot, Sink} {
		if got := Parse(z.String()); got != z {
			t.Errorf("Parse(%q) = %v, want %v", z.String(), got, z)
		}
	}
	if Zone(42).String() != "other" {
		t.Errorf("Zone(42).String() = %q", Zone(42).String())
	}
	if Parse("nope") != Other {
		t.Error("Parse(unknown) should be Other")
	}
}

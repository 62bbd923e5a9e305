package styles

import "unicode/utf8"

// Label budgets per canvas width band.
const (
	NarrowWidth = 600
	MediumWidth = 1000

	NarrowLabelLength = 12
	MediumLabelLength = 18
	WideLabelLength   = 25
)

const ellipsis = "..."

// MaxLabelLength returns the label character budget for a canvas width.
func MaxLabelLength(width float64) int {
	switch {
	case width < NarrowWidth:
		return NarrowLabelLength
	case width < MediumWidth:
		return MediumLabelLength
	default:
		return WideLabelLength
	}
}

// Truncate shortens label to maxLength characters, ending in "...".
// Labels of maxLength characters or fewer are returned unchanged.
// Characters are runes; an invalid UTF-8 byte counts as one and is kept as is.
func Truncate(label string, maxLength int) string {
	if utf8.RuneCountInString(label) <= maxLength {
		return label
	}
	keep := max(maxLength-len(ellipsis), 0)
	n := 0
	for i := range label {
		if n == keep {
			return label[:i] + ellipsis
		}
		n++
	}
	return label + ellipsis
}

// FitLabel truncates label to the budget for a canvas of the given width.
func FitLabel(label string, width float64) string {
	return Truncate(label, MaxLabelLength(width))
}

package styles

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/shopspring/decimal"
)

// Label font metrics used to place text beside nodes.
const (
	FontSize      = 12.0
	fontCharWidth = 0.55
)

// TextWidth estimates the rendered width of s at [FontSize].
func TextWidth(s string) float64 {
	return float64(len([]rune(s))) * FontSize * fontCharWidth
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FormatValue renders a flow magnitude for tooltips: two decimals, comma
// thousands separators and an optional currency code suffix.
//
//	FormatValue(1234567.5, "EUR") == "1,234,567.50 EUR"
func FormatValue(v float64, currency string) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	if currency != "" {
		b.WriteByte(' ')
		b.WriteString(currency)
	}
	return b.String()
}

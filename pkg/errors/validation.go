package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCanvasDimension bounds width and height accepted from callers.
const MaxCanvasDimension = 20000

// ValidateDimensions checks a canvas size before it reaches the layout engine.
// The engine itself accepts anything; this guards the CLI and API surfaces.
func ValidateDimensions(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return New(ErrCodeInvalidDimension, "%s must be a finite number", d.name)
		}
		if d.v <= 0 {
			return New(ErrCodeInvalidDimension, "%s must be positive, got %g", d.name, d.v)
		}
		if d.v > MaxCanvasDimension {
			return New(ErrCodeInvalidDimension, "%s too large (max %d), got %g", d.name, MaxCanvasDimension, d.v)
		}
	}
	return nil
}

// ValidateCurvature checks a ribbon curvature factor. Zero draws straight
// ribbons; one puts both control points on the opposite anchor.
func ValidateCurvature(c float64) error {
	if math.IsNaN(c) || c < 0 || c > 1 {
		return New(ErrCodeInvalidInput, "curvature must be in [0, 1], got %g", c)
	}
	return nil
}

// ValidatePath validates a file path supplied on the command line or in config.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateKeyPrefix validates a cache namespace used by scoped keyers.
// Prefixes end up in Redis keys and file names, so separators are rejected.
func ValidateKeyPrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidInput, "key prefix cannot be empty")
	}
	if len(prefix) > 64 {
		return New(ErrCodeInvalidInput, "key prefix too long (max 64 characters)")
	}
	if strings.ContainsAny(prefix, "/\\:* \x00") {
		return New(ErrCodeInvalidInput, "key prefix contains invalid characters: %q", prefix)
	}
	return nil
}

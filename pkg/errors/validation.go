package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// matchIDRegex matches the identifier shapes we accept from external
// match sources: alphanumerics plus dot, underscore and hyphen.
var matchIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateMatchID validates an externally supplied match identifier.
// It rejects identifiers that could be used for path traversal or
// injection when the id ends up in cache keys or file names.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 128 characters
func ValidateMatchID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMatch, "match id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidMatch, "match id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMatch, "match id contains invalid control characters")
		}
	}

	if !matchIDRegex.MatchString(id) {
		return New(ErrCodeInvalidMatch, "invalid match id: %q", id)
	}

	return nil
}

// Output formats supported by the renderers.
var validFormats = map[string]bool{
	"svg":  true,
	"png":  true,
	"dot":  true,
	"json": true,
}

// ValidateFormat validates a render output format name. Format names
// are lowercase; they flow into render dispatch and artifact cache
// keys, so case variants are rejected rather than normalized.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	if !validFormats[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q (expected svg, png, dot or json)", format)
	}

	return nil
}

// ValidateDimensions validates a container width/height pair coming
// from an untrusted caller.
func ValidateDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "container dimensions must be positive (got %gx%g)", width, height)
	}

	// An absurdly large viewport is almost certainly a unit mistake.
	const maxDimension = 100000
	if width > maxDimension || height > maxDimension {
		return New(ErrCodeInvalidDimensions, "container dimensions too large (max %d)", maxDimension)
	}

	return nil
}

// ValidateMongoURI validates a MongoDB connection string.
// It ensures the URI has a mongodb scheme before the driver sees it.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidInput, "mongodb URI cannot be empty")
	}

	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidInput, "URI must use mongodb or mongodb+srv scheme")
	}

	return nil
}

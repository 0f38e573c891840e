package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDatasetName validates an optional dataset name for safety.
// Names flow into SVG output as element identifiers and tooltips, so
// they must not contain markup or control characters.
//
// The validation rules are intentionally conservative:
//   - No control characters
//   - No null bytes
//   - No XML-significant characters (<, >, &, ", ')
//   - Maximum length of 256 characters
//
// An empty name is valid (datasets are anonymous by default).
func ValidateDatasetName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "dataset name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "dataset name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "<>&\"'") {
		return New(ErrCodeInvalidInput, "dataset name contains markup characters: %q", name)
	}

	return nil
}

// hexColorRegex matches 3, 4, 6 and 8 digit hex colors.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// funcColorRegex matches rgb()/rgba()/hsl()/hsla() functional notation.
var funcColorRegex = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([0-9.,%\s]+\)$`)

// namedColorRegex matches CSS named colors (letters only, e.g. "steelblue").
var namedColorRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

// ValidateColor validates a color string used in style attributes.
// Accepted forms are hex colors, rgb()/rgba()/hsl()/hsla() notation and
// CSS named colors. The special values "none" and "transparent" are
// matched by the named-color form.
//
// Colors are written verbatim into SVG style attributes, so anything
// that could escape the attribute context is rejected.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}

	if len(color) > 64 {
		return New(ErrCodeInvalidInput, "color value too long")
	}

	if hexColorRegex.MatchString(color) {
		return nil
	}
	if funcColorRegex.MatchString(color) {
		return nil
	}
	if namedColorRegex.MatchString(color) {
		return nil
	}

	return New(ErrCodeInvalidInput, "invalid color value: %q", color)
}

// ValidateOutputPath validates a file path used as an export target.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateDocumentFilename validates a chart document filename.
// It ensures the extension is one the readers understand.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDocument, "document filename cannot be empty")
	}

	lower := strings.ToLower(filename)
	for _, ext := range []string{".toml", ".json"} {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}

	return New(ErrCodeInvalidDocument, "unsupported document extension: %q (want .toml or .json)", filename)
}

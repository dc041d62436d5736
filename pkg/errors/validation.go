package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxExtent bounds output dimensions accepted from files and flags.
const MaxExtent = 1 << 15

// ValidateExtent checks that an output width or height is positive and
// within MaxExtent.
func ValidateExtent(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %d", name, v)
	}
	if v > MaxExtent {
		return New(ErrCodeInvalidInput, "%s too large (max %d), got %d", name, MaxExtent, v)
	}
	return nil
}

// layoutExtensions lists the file extensions a layout description may use.
var layoutExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// ValidateLayoutPath validates a layout description path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be one of .toml, .yaml, .yml or .json
func ValidateLayoutPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range layoutExtensions {
		if ext == allowed {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "unsupported layout file extension %q (want one of %s)",
		ext, strings.Join(layoutExtensions, ", "))
}

package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFontName validates a (family, style) pair before it is handed to a
// host font loader.
//
// The validation rules are intentionally conservative:
//   - No empty family or style
//   - No control characters
//   - Maximum length of 256 characters each
func ValidateFontName(family, style string) error {
	if strings.TrimSpace(family) == "" {
		return New(ErrCodeInvalidInput, "font family cannot be empty")
	}
	if strings.TrimSpace(style) == "" {
		return New(ErrCodeInvalidInput, "font style cannot be empty")
	}
	for _, s := range []string{family, style} {
		if len(s) > 256 {
			return New(ErrCodeInvalidInput, "font name too long (max 256 characters)")
		}
		for _, r := range s {
			if unicode.IsControl(r) {
				return New(ErrCodeInvalidInput, "font name contains invalid control characters")
			}
		}
	}
	return nil
}

// documentExtensions are the file extensions accepted for document files.
var documentExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateDocumentPath validates a document file path for reading or writing.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .json, .yaml or .yml
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !documentExtensions[ext] {
		return New(ErrCodeInvalidPath, "unsupported document extension %q (want .json, .yaml or .yml)", ext)
	}

	return nil
}

package errors

import (
	"strings"
	"testing"
)

func TestValidateFontName(t *testing.T) {
	tests := []struct {
		name    string
		family  string
		style   string
		wantErr bool
	}{
		{"valid", "Inter", "Regular", false},
		{"valid with spaces", "Roboto Mono", "Bold Italic", false},

		{"empty family", "", "Regular", true},
		{"blank style", "Inter", "  ", true},
		{"control char", "Inter\x01", "Regular", true},
		{"too long", strings.Repeat("a", 300), "Regular", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFontName(tt.family, tt.style)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFontName(%q, %q) error = %v, wantErr %v", tt.family, tt.style, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateFontName returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid json", "scene.json", false},
		{"valid nested yaml", "out/scene.yaml", false},
		{"valid yml upper", "SCENE.YML", false},
		{"valid absolute", "/tmp/scene.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600) + ".json", true},
		{"null byte", "foo\x00.json", true},
		{"newline", "foo\n.json", true},
		{"no extension", "scene", true},
		{"wrong extension", "scene.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateDocumentPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeExportSkipped,
		ErrCodeUnsupportedVariant,
		ErrCodeFontLoadFailure,
		ErrCodeStructuralFallback,
		ErrCodeCreationFailure,
		ErrCodeNothingProduced,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}

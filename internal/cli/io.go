package cli

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
)

// readDocument reads a document file, or stdin for "-". Stdin is decoded as
// YAML, which also accepts JSON.
func readDocument(path string) (doc.Document, error) {
	if path == "-" {
		return doc.Read(os.Stdin, doc.FormatYAML)
	}
	return doc.ReadFile(path)
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create output dir")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

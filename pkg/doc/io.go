package doc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/scenedoc/pkg/errors"
)

// Version is the current document envelope version.
const Version = 1

// Document is the file envelope for one or more top-level canonical trees.
type Document struct {
	Version int    `json:"version"`
	Nodes   []Node `json:"nodes"`
}

// NewDocument wraps nodes in a current-version envelope.
func NewDocument(nodes ...Node) Document {
	return Document{Version: Version, Nodes: nodes}
}

// Count returns the number of nodes across all trees.
func (d *Document) Count() int {
	total := 0
	for i := range d.Nodes {
		total += d.Nodes[i].Count()
	}
	return total
}

// =============================================================================
// Formats
// =============================================================================

// Format is a wire encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ValidFormats lists the accepted format names.
var ValidFormats = map[Format]bool{
	FormatJSON: true,
	FormatYAML: true,
}

// ParseFormat parses a format name; "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	if !ValidFormats[f] {
		return "", errs.New(errs.ErrCodeInvalidFormat, "unknown document format %q", s)
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal encodes d in the given format. JSON output is indented.
func Marshal(d Document, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document. Besides the envelope it accepts a bare array
// of nodes or a single node object, so exporter output can be fed back as is.
func Unmarshal(data []byte, f Format) (Document, error) {
	if f == FormatYAML {
		var err error
		if data, err = yamlToJSON(data); err != nil {
			return Document{}, err
		}
	}
	return decodeJSON(data)
}

// Write encodes d to w in the given format.
func Write(w io.Writer, d Document, f Format) error {
	if d.Version == 0 {
		d.Version = Version
	}
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		out, err := jsonToYAML(data)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unknown document format %q", f)
	}
}

// Read decodes a document from r.
func Read(r io.Reader, f Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data, f)
}

// ReadFile reads a document file, inferring the format from its extension.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	d, err := Unmarshal(data, FormatFromPath(path))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteFile writes a document file, inferring the format from its extension.
// The file is created with 0644 permissions.
func WriteFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, d, FormatFromPath(path))
}

// =============================================================================
// Internal Implementation
// =============================================================================

func decodeJSON(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, errs.New(errs.ErrCodeInvalidFormat, "empty document")
	}

	var d Document
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &d.Nodes); err != nil {
			return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
		}
	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
		}
		if _, ok := keys["nodes"]; ok {
			if err := json.Unmarshal(trimmed, &d); err != nil {
				return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
			}
		} else {
			var n Node
			if err := json.Unmarshal(trimmed, &n); err != nil {
				return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
			}
			d.Nodes = []Node{n}
		}
	default:
		return Document{}, errs.New(errs.ErrCodeInvalidFormat, "document must be an object or an array")
	}

	if len(d.Nodes) == 0 {
		return Document{}, errs.New(errs.ErrCodeInvalidInput, "document has no nodes")
	}
	if d.Version == 0 {
		d.Version = Version
	}
	return d, nil
}

// yamlToJSON transcodes YAML to JSON so that both encodings share the JSON
// field names and omitempty rules.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return out, nil
}

// jsonToYAML re-emits JSON as block-style YAML, keeping key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	resetStyle(&root)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

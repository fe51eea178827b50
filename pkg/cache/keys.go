package cache

import "strings"

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey keys a normalized document by the hash of its input.
	DocumentKey(inputHash string, opts DocumentKeyOpts) string

	// OutlineKey keys a rendered outline by the hash of its document.
	OutlineKey(docHash string, opts OutlineKeyOpts) string
}

// DocumentKeyOpts are the settings that change a normalized document.
type DocumentKeyOpts struct {
	Format       string   `json:"format"`
	DefaultFonts []string `json:"default_fonts,omitempty"`
	Fonts        []string `json:"fonts,omitempty"`
	AllFonts     bool     `json:"all_fonts,omitempty"`
	DefaultSize  float64  `json:"default_size"`
	MinSize      float64  `json:"min_size"`
}

// OutlineKeyOpts are the settings that change a rendered outline.
type OutlineKeyOpts struct {
	Format    string `json:"format"`
	Direction string `json:"direction,omitempty"`
	MaxDepth  int    `json:"max_depth,omitempty"`
	Detailed  bool   `json:"detailed,omitempty"`
}

// keyVersion is bumped whenever the cached representation changes.
const keyVersion = "v1"

// DefaultKeyer produces unscoped keys of the form "kind:v1:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(inputHash string, opts DocumentKeyOpts) string {
	opts.Format = strings.ToLower(opts.Format)
	return hashKey("doc:"+keyVersion, inputHash, opts)
}

// OutlineKey implements Keyer.
func (DefaultKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	opts.Format = strings.ToLower(opts.Format)
	opts.Direction = strings.ToUpper(opts.Direction)
	return hashKey("outline:"+keyVersion, docHash, opts)
}

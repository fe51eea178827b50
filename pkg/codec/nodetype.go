package codec

import (
	"strings"

	"github.com/matzehuels/scenedoc/pkg/doc"
)

// NormalizeType maps any type tag to a recognized node type. Input is trimmed
// and uppercased; anything still unrecognized becomes [doc.DefaultType].
func NormalizeType(tag string) doc.NodeType {
	t := doc.NodeType(strings.ToUpper(strings.TrimSpace(tag)))
	if t.Known() {
		return t
	}
	return doc.DefaultType
}

// IsKnownType reports whether tag names a recognized type without
// normalization.
func IsKnownType(tag string) bool { return doc.NodeType(tag).Known() }

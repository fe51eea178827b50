package memhost

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// Glyph metrics used to size auto-resizing text. They approximate a
// proportional font well enough for layout tests.
const (
	glyphWidth  = 0.5
	autoLeading = 1.2
)

var validAutoResize = []string{
	doc.AutoResizeNone, doc.AutoResizeHeight, doc.AutoResizeWidthAndHeight, doc.AutoResizeTruncate,
}

type textMixin struct{ n *node }

func (m textMixin) Characters() string {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.characters
}

// SetCharacters replaces the text content. The node's font must be loaded.
func (m textMixin) SetCharacters(s string) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if err := m.n.fontReady(); err != nil {
		return err
	}
	m.n.characters = s
	m.n.layoutText()
	return nil
}

func (m textMixin) FontName() host.Value[host.FontName] {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	if m.n.mixed[PropFontName] {
		return host.Mixed[host.FontName]()
	}
	return host.Some(m.n.font)
}

// SetFontName switches the node to f, which must be loaded.
func (m textMixin) SetFontName(f host.FontName) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if !m.n.h.loaded[f] {
		return fmt.Errorf("font %q is not loaded", f)
	}
	m.n.font = f
	delete(m.n.mixed, PropFontName)
	m.n.layoutText()
	return nil
}

func (m textMixin) TextStyle() host.TextStyle {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	n := m.n
	t := n.text
	s := host.TextStyle{
		FontSize:            mixedOr(n, PropFontSize, t.fontSize),
		TextAlignHorizontal: t.alignH,
		TextAlignVertical:   t.alignV,
		LineHeight:          mixedOr(n, PropLineHeight, t.lineHeight),
		LetterSpacing:       mixedOr(n, PropLetterSpacing, t.letterSpacing),
		TextCase:            mixedOr(n, PropTextCase, t.textCase),
		TextDecoration:      mixedOr(n, PropTextDecoration, t.decoration),
		TextAutoResize:      t.autoResize,
		ParagraphIndent:     t.paragraphIndent,
		ParagraphSpacing:    t.paragraphSpacing,
		ListSpacing:         t.listSpacing,
		HangingPunctuation:  t.hangingPunct,
		HangingList:         t.hangingList,
		LeadingTrim:         t.leadingTrim,
		TextTruncation:      t.truncation,
		TextStyleID:         t.styleID,
	}
	if t.maxLines != nil {
		v := *t.maxLines
		s.MaxLines = &v
	}
	switch {
	case n.mixed[PropHyperlink]:
		s.Hyperlink = host.Mixed[host.Hyperlink]()
	case t.hyperlink != nil:
		s.Hyperlink = host.Some(*t.hyperlink)
	}
	return s
}

// SetTextStyle applies typography. Absent values and empty strings keep the
// current setting. The node's font must be loaded.
func (m textMixin) SetTextStyle(s host.TextStyle) error {
	if err := validateTextStyle(s); err != nil {
		return err
	}

	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	n := m.n
	if err := n.fontReady(); err != nil {
		return err
	}
	t := &n.text
	if v, ok := s.FontSize.Get(); ok {
		t.fontSize = v
		delete(n.mixed, PropFontSize)
	}
	if v, ok := s.LineHeight.Get(); ok {
		t.lineHeight = v
		delete(n.mixed, PropLineHeight)
	}
	if v, ok := s.LetterSpacing.Get(); ok {
		t.letterSpacing = v
		delete(n.mixed, PropLetterSpacing)
	}
	if v, ok := s.TextCase.Get(); ok {
		t.textCase = v
		delete(n.mixed, PropTextCase)
	}
	if v, ok := s.TextDecoration.Get(); ok {
		t.decoration = v
		delete(n.mixed, PropTextDecoration)
	}
	if v, ok := s.Hyperlink.Get(); ok {
		t.hyperlink = &v
		delete(n.mixed, PropHyperlink)
	}
	setIf(&t.alignH, s.TextAlignHorizontal)
	setIf(&t.alignV, s.TextAlignVertical)
	setIf(&t.autoResize, s.TextAutoResize)
	setIf(&t.leadingTrim, s.LeadingTrim)
	setIf(&t.truncation, s.TextTruncation)
	setIf(&t.styleID, s.TextStyleID)
	t.paragraphIndent = s.ParagraphIndent
	t.paragraphSpacing = s.ParagraphSpacing
	t.listSpacing = s.ListSpacing
	t.hangingPunct = s.HangingPunctuation
	t.hangingList = s.HangingList
	if s.MaxLines != nil {
		v := *s.MaxLines
		t.maxLines = &v
	}
	n.layoutText()
	return nil
}

func validateTextStyle(s host.TextStyle) error {
	if v, ok := s.FontSize.Get(); ok && v < 1 {
		return fmt.Errorf("font size %g must be at least 1", v)
	}
	if s.TextAutoResize != "" && !slices.Contains(validAutoResize, s.TextAutoResize) {
		return fmt.Errorf("invalid text auto-resize %q", s.TextAutoResize)
	}
	if lh, ok := s.LineHeight.Get(); ok {
		switch lh.Unit {
		case doc.UnitAuto, doc.UnitPixels, doc.UnitPercent:
		default:
			return fmt.Errorf("invalid line height unit %q", lh.Unit)
		}
	}
	if s.MaxLines != nil && *s.MaxLines < 1 {
		return fmt.Errorf("max lines %d must be at least 1", *s.MaxLines)
	}
	return nil
}

// fontReady reports whether text edits are allowed. A node with mixed fonts
// can never be edited here.
func (n *node) fontReady() error {
	if n.mixed[PropFontName] {
		return fmt.Errorf("text %s has mixed fonts", n.id)
	}
	if !n.h.loaded[n.font] {
		return fmt.Errorf("font %q is not loaded", n.font)
	}
	return nil
}

// layoutText recomputes the bounds of auto-resizing text.
func (n *node) layoutText() {
	lines := strings.Split(n.characters, "\n")
	size := n.text.fontSize
	lineHeight := size * autoLeading
	switch n.text.lineHeight.Unit {
	case doc.UnitPixels:
		lineHeight = n.text.lineHeight.Value
	case doc.UnitPercent:
		lineHeight = size * n.text.lineHeight.Value / 100
	}

	switch n.text.autoResize {
	case doc.AutoResizeWidthAndHeight:
		widest := 0
		for _, l := range lines {
			widest = max(widest, utf8.RuneCountInString(l))
		}
		n.width = float64(widest) * size * glyphWidth
		n.height = float64(len(lines)) * lineHeight
	case doc.AutoResizeHeight:
		n.height = float64(len(lines)) * lineHeight
	}
}

func mixedOr[T any](n *node, p Property, v T) host.Value[T] {
	if n.mixed[p] {
		return host.Mixed[T]()
	}
	return host.Some(v)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

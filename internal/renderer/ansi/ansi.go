// Package ansi prints documents to a terminal using ANSI escape sequences.
package ansi

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/inkwell/internal/engine/document"
)

// Printer writes documents with their inline styles and block types
// rendered as terminal attributes.
type Printer struct {
	// ShowKeys prefixes every block with its key.
	ShowKeys bool

	// NoColor prints plain text with block markers only.
	NoColor bool

	out io.Writer
}

// New creates a printer writing to w. A nil w writes to color.Output.
func New(w io.Writer) *Printer {
	if w == nil {
		w = color.Output
	}
	return &Printer{out: w}
}

var keySpacing = strings.Repeat(" ", 10)

// Print writes every block of doc on its own line.
func (p *Printer) Print(doc document.Document) error {
	ordinal := 0
	for _, b := range doc.Blocks() {
		if b.Type() == document.OrderedListItem {
			ordinal++
		} else {
			ordinal = 0
		}
		if err := p.PrintBlock(b, ordinal); err != nil {
			return err
		}
	}
	return nil
}

// PrintBlock writes a single block. ordinal numbers ordered list items.
func (p *Printer) PrintBlock(b document.Block, ordinal int) error {
	if p.ShowKeys {
		k := p.colorize(color.FgHiYellow, color.Faint)
		pad := len(keySpacing) - len(b.Key())
		if pad < 1 {
			pad = 1
		}
		if _, err := k.Fprint(p.out, string(b.Key())+strings.Repeat(" ", pad)); err != nil {
			return err
		}
	}

	marker, markerAttrs := blockMarker(b.Type(), ordinal)
	if marker != "" {
		if _, err := p.colorize(markerAttrs...).Fprint(p.out, marker); err != nil {
			return err
		}
	}

	base := blockAttributes(b.Type())
	for _, seg := range Segments(b) {
		attrs := append([]color.Attribute{}, base...)
		for _, tag := range seg.Tags {
			attrs = append(attrs, TagAttributes(tag)...)
		}
		if _, err := p.colorize(attrs...).Fprint(p.out, seg.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

func (p *Printer) colorize(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.NoColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// Segment is a run of text sharing the same set of inline styles.
type Segment struct {
	Text string
	Tags []document.StyleTag
}

// Segments splits the block text at every style boundary.
func Segments(b document.Block) []Segment {
	runes := []rune(b.Text())
	if len(runes) == 0 {
		return nil
	}

	var out []Segment
	start := 0
	current := b.StylesAt(0)
	for i := 1; i <= len(runes); i++ {
		var tags []document.StyleTag
		if i < len(runes) {
			tags = b.StylesAt(i)
			if sameTags(tags, current) {
				continue
			}
		}
		out = append(out, Segment{Text: string(runes[start:i]), Tags: current})
		start, current = i, tags
	}
	return out
}

// TagAttributes returns the terminal attributes for an inline style.
func TagAttributes(tag document.StyleTag) []color.Attribute {
	switch tag {
	case document.Bold:
		return []color.Attribute{color.Bold}
	case document.Italic:
		return []color.Attribute{color.Italic}
	case document.Underline:
		return []color.Attribute{color.Underline}
	case document.Code:
		return []color.Attribute{color.FgCyan}
	case document.Strikethrough:
		return []color.Attribute{color.CrossedOut}
	case document.Red:
		return []color.Attribute{color.FgRed}
	default:
		return nil
	}
}

func blockAttributes(typ document.BlockType) []color.Attribute {
	switch typ {
	case document.HeaderOne:
		return []color.Attribute{color.Bold, color.Underline}
	case document.HeaderTwo, document.HeaderThree:
		return []color.Attribute{color.Bold}
	case document.Blockquote:
		return []color.Attribute{color.Italic}
	case document.CodeBlock:
		return []color.Attribute{color.FgCyan}
	default:
		return nil
	}
}

func blockMarker(typ document.BlockType, ordinal int) (string, []color.Attribute) {
	switch typ {
	case document.Blockquote:
		return "│ ", []color.Attribute{color.Faint}
	case document.UnorderedListItem:
		return "• ", nil
	case document.OrderedListItem:
		return strconv.Itoa(ordinal) + ". ", nil
	case document.CodeBlock:
		return "  ", nil
	default:
		return "", nil
	}
}

func sameTags(a, b []document.StyleTag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

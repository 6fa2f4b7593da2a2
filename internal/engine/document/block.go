package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Key identifies a block for the lifetime of a document.
type Key string

// keyLen is the number of hex characters kept from a generated UUID.
const keyLen = 8

// NewKey generates a random block key.
func NewKey() Key {
	return Key(strings.ReplaceAll(uuid.NewString(), "-", "")[:keyLen])
}

// uniqueKey generates a key for which taken returns false.
func uniqueKey(taken func(Key) bool) Key {
	for {
		k := NewKey()
		if !taken(k) {
			return k
		}
	}
}

// BlockType is the paragraph-level type of a block.
type BlockType string

// Block types. Normal and HeaderOne are produced by the editing core; the
// remaining types are reserved and round-trip through snapshots unchanged.
const (
	Normal            BlockType = "normal"
	HeaderOne         BlockType = "header-one"
	HeaderTwo         BlockType = "header-two"
	HeaderThree       BlockType = "header-three"
	Blockquote        BlockType = "blockquote"
	CodeBlock         BlockType = "code-block"
	UnorderedListItem BlockType = "unordered-list-item"
	OrderedListItem   BlockType = "ordered-list-item"
)

// unstyled is the draft name for a normal paragraph.
const unstyled = "unstyled"

var knownBlockTypes = []BlockType{
	Normal, HeaderOne, HeaderTwo, HeaderThree,
	Blockquote, CodeBlock, UnorderedListItem, OrderedListItem,
}

// IsKnown returns true if the type is one of the supported block types.
func (t BlockType) IsKnown() bool {
	for _, k := range knownBlockTypes {
		if k == t {
			return true
		}
	}
	return false
}

// ParseBlockType parses a block type name. "unstyled" is accepted as an
// alias for Normal.
func ParseBlockType(s string) (BlockType, error) {
	if s == unstyled {
		return Normal, nil
	}
	t := BlockType(s)
	if !t.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
	}
	return t, nil
}

// Block is one paragraph-level unit of a document.
// Block is an immutable value type.
type Block struct {
	key    Key
	typ    BlockType
	text   string
	length int
	styles []StyleRange
}

// NewBlock creates a block after validating its type and style ranges.
// An empty key is replaced by a generated one.
func NewBlock(key Key, typ BlockType, text string, styles ...StyleRange) (Block, error) {
	if key == "" {
		key = NewKey()
	}
	if !typ.IsKnown() {
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownBlockType, typ)
	}
	length := utf8.RuneCountInString(text)
	if err := validateStyles(styles, length); err != nil {
		return Block{}, err
	}
	return Block{
		key:    key,
		typ:    typ,
		text:   text,
		length: length,
		styles: canonicalStyles(styles),
	}, nil
}

// EmptyBlock creates an empty normal block with a fresh key.
func EmptyBlock() Block {
	return Block{key: NewKey(), typ: Normal}
}

// Key returns the block key.
func (b Block) Key() Key { return b.key }

// Type returns the block type.
func (b Block) Type() BlockType { return b.typ }

// Text returns the block text.
func (b Block) Text() string { return b.text }

// Len returns the length of the text in runes.
func (b Block) Len() int { return b.length }

// Styles returns a copy of the block's style ranges in canonical order.
func (b Block) Styles() []StyleRange {
	if len(b.styles) == 0 {
		return nil
	}
	out := make([]StyleRange, len(b.styles))
	copy(out, b.styles)
	return out
}

// TextRange returns the text in the given rune range.
// Out-of-range bounds are clamped.
func (b Block) TextRange(r Range) string {
	runes := []rune(b.text)
	start := min(max(r.Start, 0), len(runes))
	end := min(max(r.End, start), len(runes))
	return string(runes[start:end])
}

// StylesAt returns the tags applied to the rune at offset.
func (b Block) StylesAt(offset int) []StyleTag {
	var tags []StyleTag
	for _, tag := range knownStyles {
		for _, s := range b.styles {
			if s.Tag == tag && offset >= s.Start && offset < s.End {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}

// HasStyle returns true if tag covers every offset of r.
// An empty range is never considered styled.
func (b Block) HasStyle(tag StyleTag, r Range) bool {
	if r.IsEmpty() {
		return false
	}
	return covers(b.styles, r, tag)
}

// equal compares two blocks structurally.
func (b Block) equal(other Block) bool {
	if b.key != other.key || b.typ != other.typ || b.text != other.text {
		return false
	}
	if len(b.styles) != len(other.styles) {
		return false
	}
	for i := range b.styles {
		if b.styles[i] != other.styles[i] {
			return false
		}
	}
	return true
}

// String returns a debug representation of the block.
func (b Block) String() string {
	return fmt.Sprintf("Block(%s %s %q %v)", b.key, b.typ, b.text, b.styles)
}

func (b Block) withText(text string, styles []StyleRange) Block {
	b.text = text
	b.length = utf8.RuneCountInString(text)
	b.styles = styles
	return b
}

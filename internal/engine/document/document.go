package document

import (
	"fmt"
	"strings"
)

// Document is an ordered, never-empty sequence of blocks.
// Document is an immutable value type; the zero value holds no blocks and
// is only useful as a placeholder.
type Document struct {
	blocks []Block
}

// New creates a document holding a single empty normal block.
func New() Document {
	return Document{blocks: []Block{EmptyBlock()}}
}

// FromBlocks creates a document from the given blocks.
// It fails if no blocks are given or two blocks share a key.
func FromBlocks(blocks ...Block) (Document, error) {
	if len(blocks) == 0 {
		return Document{}, ErrEmptyDocument
	}

	seen := make(map[Key]bool, len(blocks))
	for _, b := range blocks {
		if seen[b.key] {
			return Document{}, fmt.Errorf("%w: %s", ErrDuplicateKey, b.key)
		}
		seen[b.key] = true
	}

	out := make([]Block, len(blocks))
	copy(out, blocks)
	return Document{blocks: out}, nil
}

// FromText creates a document with one normal block per line of text.
func FromText(text string) Document {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		b := EmptyBlock()
		blocks = append(blocks, b.withText(line, nil))
	}
	return Document{blocks: blocks}
}

// Len returns the number of blocks.
func (d Document) Len() int {
	return len(d.blocks)
}

// Blocks returns a copy of the block list.
func (d Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// BlockAt returns the block at index i.
func (d Document) BlockAt(i int) (Block, bool) {
	if i < 0 || i >= len(d.blocks) {
		return Block{}, false
	}
	return d.blocks[i], true
}

// First returns the first block.
func (d Document) First() Block {
	if len(d.blocks) == 0 {
		return Block{}
	}
	return d.blocks[0]
}

// Last returns the last block.
func (d Document) Last() Block {
	if len(d.blocks) == 0 {
		return Block{}
	}
	return d.blocks[len(d.blocks)-1]
}

// Block returns the block with the given key.
func (d Document) Block(key Key) (Block, bool) {
	if i := d.Index(key); i >= 0 {
		return d.blocks[i], true
	}
	return Block{}, false
}

// Index returns the position of the block with the given key, or -1.
func (d Document) Index(key Key) int {
	for i, b := range d.blocks {
		if b.key == key {
			return i
		}
	}
	return -1
}

// Has returns true if the document contains a block with the given key.
func (d Document) Has(key Key) bool {
	return d.Index(key) >= 0
}

// PlainText returns the block texts joined by newlines.
func (d Document) PlainText() string {
	texts := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		texts[i] = b.text
	}
	return strings.Join(texts, "\n")
}

// Equal reports whether two documents are structurally equal: same blocks
// in the same order with the same keys, types, text and styles.
func Equal(a, b Document) bool {
	if len(a.blocks) != len(b.blocks) {
		return false
	}
	for i := range a.blocks {
		if !a.blocks[i].equal(b.blocks[i]) {
			return false
		}
	}
	return true
}

// lookup returns the index and block for key.
func (d Document) lookup(key Key) (int, Block, error) {
	i := d.Index(key)
	if i < 0 {
		return -1, Block{}, fmt.Errorf("%w: %s", ErrBlockNotFound, key)
	}
	return i, d.blocks[i], nil
}

// replaceBlocks returns a new document with blocks[from:to] replaced.
func (d Document) replaceBlocks(from, to int, repl ...Block) Document {
	out := make([]Block, 0, len(d.blocks)-(to-from)+len(repl))
	out = append(out, d.blocks[:from]...)
	out = append(out, repl...)
	out = append(out, d.blocks[to:]...)
	return Document{blocks: out}
}

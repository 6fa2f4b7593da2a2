package document

import "fmt"

// ReplaceRange replaces the runes in [start, end) of the addressed block
// with text.
//
// Style ranges are carried across the edit: offsets before the edit stay,
// offsets at or after the end of the replaced span shift by the net length
// delta, and offsets inside the replaced span clip to its boundary. Ranges
// that lay entirely inside the replaced span are dropped. Inserted text is
// styled only when the edit lies strictly inside an existing range.
func ReplaceRange(doc Document, key Key, start, end int, text string) (Document, error) {
	i, b, err := doc.lookup(key)
	if err != nil {
		return doc, err
	}
	if start > end {
		return doc, fmt.Errorf("%w: [%d:%d)", ErrRangeInvalid, start, end)
	}
	if start < 0 || end > b.length {
		return doc, fmt.Errorf("%w: [%d:%d) in block of length %d", ErrOffsetOutOfRange, start, end, b.length)
	}
	if start == end && text == "" {
		return doc, nil
	}

	runes := []rune(b.text)
	inserted := []rune(text)

	next := make([]rune, 0, len(runes)-(end-start)+len(inserted))
	next = append(next, runes[:start]...)
	next = append(next, inserted...)
	next = append(next, runes[end:]...)

	styles := shiftStyles(b.styles, start, end, len(inserted))
	return doc.replaceBlocks(i, i+1, b.withText(string(next), styles)), nil
}

// InsertText inserts text at offset and applies tags to the inserted runes.
func InsertText(doc Document, key Key, offset int, text string, tags ...StyleTag) (Document, error) {
	next, err := ReplaceRange(doc, key, offset, offset, text)
	if err != nil {
		return doc, err
	}

	r := NewRange(offset, offset+len([]rune(text)))
	for _, tag := range tags {
		if !tag.IsKnown() {
			return doc, fmt.Errorf("%w: %q", ErrUnknownStyle, tag)
		}
		i, b, _ := next.lookup(key)
		b.styles = addStyle(b.styles, r, tag)
		next = next.replaceBlocks(i, i+1, b)
	}
	return next, nil
}

// SetBlockType changes the type of exactly one block.
func SetBlockType(doc Document, key Key, typ BlockType) (Document, error) {
	if !typ.IsKnown() {
		return doc, fmt.Errorf("%w: %q", ErrUnknownBlockType, typ)
	}
	i, b, err := doc.lookup(key)
	if err != nil {
		return doc, err
	}
	if b.typ == typ {
		return doc, nil
	}
	b.typ = typ
	return doc.replaceBlocks(i, i+1, b), nil
}

// ToggleInlineStyle toggles tag over r in the addressed block.
//
// The toggle is all or nothing: if tag already covers the whole range it is
// removed from the range, otherwise the whole range gains it (merging with
// adjoining ranges of the same tag). An empty range leaves the document
// unchanged.
func ToggleInlineStyle(doc Document, key Key, r Range, tag StyleTag) (Document, error) {
	if !tag.IsKnown() {
		return doc, fmt.Errorf("%w: %q", ErrUnknownStyle, tag)
	}
	i, b, err := doc.lookup(key)
	if err != nil {
		return doc, err
	}
	if !r.IsValid() {
		return doc, fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	if r.Start < 0 || r.End > b.length {
		return doc, fmt.Errorf("%w: %s in block of length %d", ErrOffsetOutOfRange, r, b.length)
	}
	if r.IsEmpty() {
		return doc, nil
	}

	if covers(b.styles, r, tag) {
		b.styles = removeStyle(b.styles, r, tag)
	} else {
		b.styles = addStyle(b.styles, r, tag)
	}
	return doc.replaceBlocks(i, i+1, b), nil
}

// SplitBlock splits the addressed block at offset. The text after offset
// moves to a new block inserted right after it, and the new block's key is
// returned. Splitting at the very end of a block starts a normal paragraph;
// otherwise the new block keeps the original type.
func SplitBlock(doc Document, key Key, offset int) (Document, Key, error) {
	i, b, err := doc.lookup(key)
	if err != nil {
		return doc, "", err
	}
	if offset < 0 || offset > b.length {
		return doc, "", fmt.Errorf("%w: %d in block of length %d", ErrOffsetOutOfRange, offset, b.length)
	}

	runes := []rune(b.text)
	head := b.withText(string(runes[:offset]), sliceStyles(b.styles, 0, offset))

	tail := Block{key: uniqueKey(doc.Has), typ: b.typ}
	if offset == b.length {
		tail.typ = Normal
	}
	tail = tail.withText(string(runes[offset:]), sliceStyles(b.styles, offset, b.length))

	return doc.replaceBlocks(i, i+1, head, tail), tail.key, nil
}

// MergeWithPrevious appends the addressed block to the block before it.
// The merged block keeps the previous block's key and type. The returned
// offset is where the joined text starts.
func MergeWithPrevious(doc Document, key Key) (Document, int, error) {
	i, b, err := doc.lookup(key)
	if err != nil {
		return doc, 0, err
	}
	if i == 0 {
		return doc, 0, ErrNoPreviousBlock
	}

	prev := doc.blocks[i-1]
	join := prev.length

	styles := make([]StyleRange, 0, len(prev.styles)+len(b.styles))
	styles = append(styles, prev.styles...)
	styles = append(styles, offsetStyles(b.styles, join)...)

	merged := prev.withText(prev.text+b.text, canonicalStyles(styles))
	return doc.replaceBlocks(i-1, i+1, merged), join, nil
}

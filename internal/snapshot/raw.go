package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"

	"github.com/dshills/inkwell/internal/engine/document"
)

// RawContent is the draft-js raw content format.
type RawContent struct {
	Blocks    []RawBlock                 `json:"blocks"`
	EntityMap map[string]json.RawMessage `json:"entityMap"`
}

// RawBlock is a block in the raw content format.
type RawBlock struct {
	Key               string            `json:"key"`
	Text              string            `json:"text"`
	Type              string            `json:"type"`
	Depth             int               `json:"depth"`
	InlineStyleRanges []RawStyleRange   `json:"inlineStyleRanges"`
	EntityRanges      []json.RawMessage `json:"entityRanges"`
	Data              map[string]any    `json:"data"`
}

// RawStyleRange is an inline style range with UTF-16 offset and length.
type RawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

const rawUnstyled = "unstyled"

// ToRaw converts doc to raw content. Normal blocks are written as
// "unstyled" and rune offsets become UTF-16 offsets.
func ToRaw(doc document.Document) RawContent {
	blocks := doc.Blocks()
	raw := RawContent{
		Blocks:    make([]RawBlock, 0, len(blocks)),
		EntityMap: map[string]json.RawMessage{},
	}
	for _, b := range blocks {
		typ := string(b.Type())
		if b.Type() == document.Normal {
			typ = rawUnstyled
		}
		rb := RawBlock{
			Key:               string(b.Key()),
			Text:              b.Text(),
			Type:              typ,
			InlineStyleRanges: []RawStyleRange{},
			EntityRanges:      []json.RawMessage{},
			Data:              map[string]any{},
		}
		runes := []rune(b.Text())
		for _, st := range b.Styles() {
			off := utf16Len(runes[:st.Start])
			rb.InlineStyleRanges = append(rb.InlineStyleRanges, RawStyleRange{
				Offset: off,
				Length: utf16Len(runes[:st.End]) - off,
				Style:  string(st.Tag),
			})
		}
		raw.Blocks = append(raw.Blocks, rb)
	}
	return raw
}

// FromRaw converts raw content to a snapshot. Depth, entities and block
// data are discarded. Offsets that split a surrogate pair are malformed.
func FromRaw(raw RawContent) (Snapshot, error) {
	s := Snapshot{Version: Version, Blocks: make([]BlockRecord, 0, len(raw.Blocks))}
	for i, rb := range raw.Blocks {
		rec := BlockRecord{
			Key:    rb.Key,
			Type:   rb.Type,
			Text:   rb.Text,
			Styles: make([]StyleRecord, 0, len(rb.InlineStyleRanges)),
		}
		if rec.Type == "" {
			rec.Type = rawUnstyled
		}
		for j, sr := range rb.InlineStyleRanges {
			path := fmt.Sprintf("blocks[%d].inlineStyleRanges[%d]", i, j)
			start, err := runeOffset(rb.Text, sr.Offset)
			if err != nil {
				return Snapshot{}, malformed(path+".offset", err)
			}
			end, err := runeOffset(rb.Text, sr.Offset+sr.Length)
			if err != nil {
				return Snapshot{}, malformed(path+".length", err)
			}
			rec.Styles = append(rec.Styles, StyleRecord{Start: start, End: end, Tag: sr.Style})
		}
		s.Blocks = append(s.Blocks, rec)
	}
	return s, nil
}

// MarshalRaw serializes doc to draft-js raw content JSON.
func MarshalRaw(doc document.Document) ([]byte, error) {
	data, err := json.MarshalIndent(ToRaw(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode raw content: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalRaw decodes draft-js raw content JSON into a document.
// Unknown fields are ignored since raw content may carry editor-specific
// extensions.
func UnmarshalRaw(data []byte) (document.Document, error) {
	var raw RawContent
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return document.Document{}, malformed("", err)
	}
	if raw.Blocks == nil {
		return document.Document{}, malformedf("blocks", "missing field")
	}
	s, err := FromRaw(raw)
	if err != nil {
		return document.Document{}, err
	}
	return Deserialize(s)
}

func utf16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		n += utf16.RuneLen(r)
	}
	return n
}

// runeOffset converts a UTF-16 offset into text to a rune offset.
func runeOffset(text string, units int) (int, error) {
	if units < 0 {
		return 0, fmt.Errorf("%w: %d", document.ErrOffsetOutOfRange, units)
	}
	n, runes := 0, 0
	for _, r := range text {
		if n == units {
			return runes, nil
		}
		n += utf16.RuneLen(r)
		runes++
		if n > units {
			return 0, fmt.Errorf("offset %d splits a surrogate pair", units)
		}
	}
	if n == units {
		return runes, nil
	}
	return 0, fmt.Errorf("%w: %d in text of %d UTF-16 units", document.ErrOffsetOutOfRange, units, n)
}

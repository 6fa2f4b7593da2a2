package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dshills/inkwell/internal/engine/document"
)

// Version is the snapshot format version written by this package.
const Version = 1

// Snapshot is the serialized form of a document.
type Snapshot struct {
	Version int           `json:"version"`
	Blocks  []BlockRecord `json:"blocks"`
}

// BlockRecord is the serialized form of a block.
type BlockRecord struct {
	Key    string        `json:"key"`
	Type   string        `json:"type"`
	Text   string        `json:"text"`
	Styles []StyleRecord `json:"styles"`
}

// StyleRecord is the serialized form of a style range.
type StyleRecord struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Tag   string `json:"tag"`
}

// Serialize converts doc into a snapshot. Style records are in canonical
// order.
func Serialize(doc document.Document) Snapshot {
	blocks := doc.Blocks()
	s := Snapshot{Version: Version, Blocks: make([]BlockRecord, 0, len(blocks))}
	for _, b := range blocks {
		styles := b.Styles()
		rec := BlockRecord{
			Key:    string(b.Key()),
			Type:   string(b.Type()),
			Text:   b.Text(),
			Styles: make([]StyleRecord, 0, len(styles)),
		}
		for _, st := range styles {
			rec.Styles = append(rec.Styles, StyleRecord{Start: st.Start, End: st.End, Tag: string(st.Tag)})
		}
		s.Blocks = append(s.Blocks, rec)
	}
	return s
}

// Deserialize validates s and builds the document it describes. Records
// without a key receive a generated one. Adjacent ranges of one tag are
// merged.
func Deserialize(s Snapshot) (document.Document, error) {
	if s.Version != 0 && s.Version != Version {
		return document.Document{}, malformedf("version", "unsupported version %d", s.Version)
	}
	if len(s.Blocks) == 0 {
		return document.Document{}, malformed("blocks", document.ErrEmptyDocument)
	}

	seen := make(map[document.Key]int, len(s.Blocks))
	for i, rec := range s.Blocks {
		if rec.Key == "" {
			continue
		}
		k := document.Key(rec.Key)
		if first, dup := seen[k]; dup {
			return document.Document{}, malformedf(blockPath(i)+".key", "%w: %q also used by %s", document.ErrDuplicateKey, rec.Key, blockPath(first))
		}
		seen[k] = i
	}

	blocks := make([]document.Block, 0, len(s.Blocks))
	for i, rec := range s.Blocks {
		key := document.Key(rec.Key)
		for key == "" {
			if k := document.NewKey(); !taken(seen, k) {
				key = k
				seen[k] = i
			}
		}
		b, err := deserializeBlock(i, key, rec)
		if err != nil {
			return document.Document{}, err
		}
		blocks = append(blocks, b)
	}

	doc, err := document.FromBlocks(blocks...)
	if err != nil {
		return document.Document{}, malformed("blocks", err)
	}
	return doc, nil
}

func taken(seen map[document.Key]int, k document.Key) bool {
	_, ok := seen[k]
	return ok
}

func deserializeBlock(i int, key document.Key, rec BlockRecord) (document.Block, error) {
	typ, err := document.ParseBlockType(rec.Type)
	if err != nil {
		return document.Block{}, malformed(blockPath(i)+".type", err)
	}

	length := len([]rune(rec.Text))
	styles := make([]document.StyleRange, 0, len(rec.Styles))
	for j, sr := range rec.Styles {
		tag, err := document.ParseStyleTag(sr.Tag)
		if err != nil {
			return document.Block{}, malformed(stylePath(i, j)+".tag", err)
		}
		if sr.Start < 0 || sr.End > length {
			return document.Block{}, malformedf(stylePath(i, j), "%w: [%d:%d) in block of length %d",
				document.ErrOffsetOutOfRange, sr.Start, sr.End, length)
		}
		if sr.End <= sr.Start {
			return document.Block{}, malformedf(stylePath(i, j), "%w: [%d:%d)", document.ErrRangeInvalid, sr.Start, sr.End)
		}
		styles = append(styles, document.StyleRange{Start: sr.Start, End: sr.End, Tag: tag})
	}

	b, err := document.NewBlock(key, typ, rec.Text, styles...)
	if err != nil {
		return document.Block{}, malformed(blockPath(i)+".styles", err)
	}
	return b, nil
}

// Encode writes s as indented JSON.
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// wire types mirror the records with pointers so missing fields can be
// told apart from zero values.
type wireSnapshot struct {
	Version *int         `json:"version"`
	Blocks  *[]wireBlock `json:"blocks"`
}

type wireBlock struct {
	Key    *string      `json:"key"`
	Type   *string      `json:"type"`
	Text   *string      `json:"text"`
	Styles *[]wireStyle `json:"styles"`
}

type wireStyle struct {
	Start *int    `json:"start"`
	End   *int    `json:"end"`
	Tag   *string `json:"tag"`
}

// Decode parses snapshot JSON and checks its structure. It does not
// validate the document; use Deserialize or Unmarshal for that.
func Decode(data []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w wireSnapshot
	if err := dec.Decode(&w); err != nil {
		return Snapshot{}, malformed("", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Snapshot{}, malformedf("", "trailing data after snapshot")
	}

	s := Snapshot{Version: Version}
	if w.Version != nil {
		s.Version = *w.Version
	}
	if w.Blocks == nil {
		return Snapshot{}, malformedf("blocks", "missing field")
	}

	s.Blocks = make([]BlockRecord, 0, len(*w.Blocks))
	for i, wb := range *w.Blocks {
		rec, err := decodeBlock(i, wb)
		if err != nil {
			return Snapshot{}, err
		}
		s.Blocks = append(s.Blocks, rec)
	}
	return s, nil
}

func decodeBlock(i int, wb wireBlock) (BlockRecord, error) {
	var rec BlockRecord
	if wb.Key != nil {
		rec.Key = *wb.Key
	}
	if wb.Type == nil {
		return rec, malformedf(blockPath(i)+".type", "missing field")
	}
	if wb.Text == nil {
		return rec, malformedf(blockPath(i)+".text", "missing field")
	}
	rec.Type, rec.Text = *wb.Type, *wb.Text

	if wb.Styles == nil {
		return rec, malformedf(blockPath(i)+".styles", "missing field")
	}
	rec.Styles = make([]StyleRecord, 0, len(*wb.Styles))
	for j, ws := range *wb.Styles {
		switch {
		case ws.Start == nil:
			return rec, malformedf(stylePath(i, j)+".start", "missing field")
		case ws.End == nil:
			return rec, malformedf(stylePath(i, j)+".end", "missing field")
		case ws.Tag == nil:
			return rec, malformedf(stylePath(i, j)+".tag", "missing field")
		}
		rec.Styles = append(rec.Styles, StyleRecord{Start: *ws.Start, End: *ws.End, Tag: *ws.Tag})
	}
	return rec, nil
}

// Marshal serializes doc to snapshot JSON.
func Marshal(doc document.Document) ([]byte, error) {
	return Encode(Serialize(doc))
}

// Unmarshal decodes snapshot JSON into a document. All failures match
// ErrMalformedSnapshot.
func Unmarshal(data []byte) (document.Document, error) {
	s, err := Decode(data)
	if err != nil {
		return document.Document{}, err
	}
	return Deserialize(s)
}

package snapshot

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/inkwell/internal/engine/document"
)

func testDocument(t *testing.T) document.Document {
	t.Helper()
	title, err := document.NewBlock("t1", document.HeaderOne, "Title")
	if err != nil {
		t.Fatal(err)
	}
	body, err := document.NewBlock("b1", document.Normal, "héllo world",
		document.StyleRange{Start: 0, End: 5, Tag: document.Bold},
		document.StyleRange{Start: 3, End: 8, Tag: document.Red},
	)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.FromBlocks(title, body)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestRoundTrip(t *testing.T) {
	doc := testDocument(t)

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !document.Equal(doc, got) {
		t.Errorf("round trip changed document:\n%s", data)
	}
}

func TestSerializeShape(t *testing.T) {
	s := Serialize(testDocument(t))

	if s.Version != Version {
		t.Errorf("expected version %d, got %d", Version, s.Version)
	}
	if len(s.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(s.Blocks))
	}
	if s.Blocks[0].Type != "header-one" || s.Blocks[0].Styles == nil {
		t.Errorf("unexpected first block %+v", s.Blocks[0])
	}
	want := []StyleRecord{{0, 5, "BOLD"}, {3, 8, "RED"}}
	if len(s.Blocks[1].Styles) != len(want) {
		t.Fatalf("expected %v, got %v", want, s.Blocks[1].Styles)
	}
	for i := range want {
		if s.Blocks[1].Styles[i] != want[i] {
			t.Errorf("style %d: expected %v, got %v", i, want[i], s.Blocks[1].Styles[i])
		}
	}
}

func TestUnmarshalOptionalFields(t *testing.T) {
	data := `{"blocks":[
		{"type":"unstyled","text":"a","styles":[]},
		{"type":"normal","text":"b","styles":[{"start":0,"end":1,"tag":"ITALIC"}]}
	]}`

	doc, err := Unmarshal([]byte(data))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 blocks, got %d", doc.Len())
	}
	first, second := doc.First(), doc.Last()
	if first.Key() == "" || second.Key() == "" || first.Key() == second.Key() {
		t.Errorf("expected distinct generated keys, got %q and %q", first.Key(), second.Key())
	}
	if first.Type() != document.Normal {
		t.Errorf("expected unstyled to map to normal, got %s", first.Type())
	}
	if !second.HasStyle(document.Italic, document.NewRange(0, 1)) {
		t.Errorf("expected italic, got %v", second.Styles())
	}
}

func TestUnmarshalMergesAdjacentRanges(t *testing.T) {
	data := `{"version":1,"blocks":[{"key":"k","type":"normal","text":"abcd","styles":[
		{"start":2,"end":4,"tag":"BOLD"},{"start":0,"end":2,"tag":"BOLD"}
	]}]}`

	doc, err := Unmarshal([]byte(data))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	styles := doc.First().Styles()
	if len(styles) != 1 || styles[0] != (document.StyleRange{Start: 0, End: 4, Tag: document.Bold}) {
		t.Errorf("expected one merged range, got %v", styles)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		cause error
	}{
		{
			name:  "bad type and range",
			input: `{"blocks":[{"type":"x","text":"a","styles":[{"start":5,"end":1,"tag":"BOLD"}]}]}`,
			path:  "blocks[0].type",
			cause: document.ErrUnknownBlockType,
		},
		{
			name:  "invalid json",
			input: `{"blocks":[`,
		},
		{
			name:  "trailing data",
			input: `{"blocks":[{"type":"normal","text":"","styles":[]}]} {}`,
		},
		{
			name:  "unknown field",
			input: `{"blocks":[],"extra":true}`,
		},
		{
			name:  "missing blocks",
			input: `{"version":1}`,
			path:  "blocks",
		},
		{
			name:  "empty blocks",
			input: `{"blocks":[]}`,
			path:  "blocks",
			cause: document.ErrEmptyDocument,
		},
		{
			name:  "missing text",
			input: `{"blocks":[{"type":"normal","styles":[]}]}`,
			path:  "blocks[0].text",
		},
		{
			name:  "missing styles",
			input: `{"blocks":[{"type":"normal","text":"a"}]}`,
			path:  "blocks[0].styles",
		},
		{
			name:  "missing style tag",
			input: `{"blocks":[{"type":"normal","text":"a","styles":[{"start":0,"end":1}]}]}`,
			path:  "blocks[0].styles[0].tag",
		},
		{
			name:  "unknown tag",
			input: `{"blocks":[{"type":"normal","text":"a","styles":[{"start":0,"end":1,"tag":"BLINK"}]}]}`,
			path:  "blocks[0].styles[0].tag",
			cause: document.ErrUnknownStyle,
		},
		{
			name:  "offset past text",
			input: `{"blocks":[{"type":"normal","text":"ab","styles":[{"start":0,"end":3,"tag":"BOLD"}]}]}`,
			path:  "blocks[0].styles[0]",
			cause: document.ErrOffsetOutOfRange,
		},
		{
			name:  "inverted range",
			input: `{"blocks":[{"type":"normal","text":"abcdef","styles":[{"start":5,"end":1,"tag":"BOLD"}]}]}`,
			path:  "blocks[0].styles[0]",
			cause: document.ErrRangeInvalid,
		},
		{
			name:  "overlapping ranges",
			input: `{"blocks":[{"type":"normal","text":"abcdef","styles":[{"start":0,"end":3,"tag":"BOLD"},{"start":2,"end":5,"tag":"BOLD"}]}]}`,
			path:  "blocks[0].styles",
			cause: document.ErrStylesOverlap,
		},
		{
			name:  "duplicate keys",
			input: `{"blocks":[{"key":"a","type":"normal","text":"","styles":[]},{"key":"a","type":"normal","text":"","styles":[]}]}`,
			path:  "blocks[1].key",
			cause: document.ErrDuplicateKey,
		},
		{
			name:  "unsupported version",
			input: `{"version":2,"blocks":[{"type":"normal","text":"","styles":[]}]}`,
			path:  "version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
			}
			var me *MalformedError
			if !errors.As(err, &me) {
				t.Fatalf("expected *MalformedError, got %T", err)
			}
			if tt.path != "" && me.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, me.Path)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestMalformedErrorMessage(t *testing.T) {
	err := malformedf("blocks[2].type", "missing field")
	if got := err.Error(); got != "malformed snapshot: blocks[2].type: missing field" {
		t.Errorf("unexpected message %q", got)
	}
	if got := malformedf("", "boom").Error(); got != "malformed snapshot: boom" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRawRoundTrip(t *testing.T) {
	doc := testDocument(t)

	data, err := MarshalRaw(doc)
	if err != nil {
		t.Fatalf("MarshalRaw failed: %v", err)
	}
	if !strings.Contains(string(data), `"type": "unstyled"`) {
		t.Errorf("expected unstyled block type in raw output:\n%s", data)
	}
	got, err := UnmarshalRaw(data)
	if err != nil {
		t.Fatalf("UnmarshalRaw failed: %v", err)
	}
	if !document.Equal(doc, got) {
		t.Errorf("raw round trip changed document:\n%s", data)
	}
}

func TestRawUTF16Offsets(t *testing.T) {
	// "😀" is two UTF-16 units and one rune.
	b, err := document.NewBlock("k", document.Normal, "😀ab", document.StyleRange{Start: 1, End: 3, Tag: document.Bold})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.FromBlocks(b)
	if err != nil {
		t.Fatal(err)
	}

	raw := ToRaw(doc)
	got := raw.Blocks[0].InlineStyleRanges
	if len(got) != 1 || got[0] != (RawStyleRange{Offset: 2, Length: 2, Style: "BOLD"}) {
		t.Errorf("unexpected raw ranges %v", got)
	}

	s, err := FromRaw(raw)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}
	if st := s.Blocks[0].Styles[0]; st.Start != 1 || st.End != 3 {
		t.Errorf("expected rune range [1,3), got %v", st)
	}
}

func TestRawSplitSurrogate(t *testing.T) {
	data := `{"blocks":[{"key":"k","text":"😀","type":"unstyled","inlineStyleRanges":[{"offset":1,"length":1,"style":"BOLD"}]}],"entityMap":{}}`

	_, err := UnmarshalRaw([]byte(data))
	var me *MalformedError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MalformedError, got %v", err)
	}
	if me.Path != "blocks[0].inlineStyleRanges[0].offset" {
		t.Errorf("unexpected path %q", me.Path)
	}
}

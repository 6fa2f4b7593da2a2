package document

import (
	"fmt"
	"sort"
)

// StyleTag names an inline style.
type StyleTag string

// Supported inline styles.
const (
	Bold          StyleTag = "BOLD"
	Italic        StyleTag = "ITALIC"
	Underline     StyleTag = "UNDERLINE"
	Code          StyleTag = "CODE"
	Strikethrough StyleTag = "STRIKETHROUGH"
	Red           StyleTag = "RED"
)

var knownStyles = []StyleTag{Bold, Italic, Underline, Code, Strikethrough, Red}

// StyleTags returns all supported style tags in their canonical order.
func StyleTags() []StyleTag {
	tags := make([]StyleTag, len(knownStyles))
	copy(tags, knownStyles)
	return tags
}

// IsKnown returns true if the tag is one of the supported styles.
func (t StyleTag) IsKnown() bool {
	for _, k := range knownStyles {
		if k == t {
			return true
		}
	}
	return false
}

// ParseStyleTag parses a style tag name.
func ParseStyleTag(s string) (StyleTag, error) {
	t := StyleTag(s)
	if !t.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
	return t, nil
}

// Range represents a rune range within a block.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start int // Inclusive start offset
	End   int // Exclusive end offset
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in runes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// ContainsRange returns true if the given range is entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// StyleRange applies a style tag to a rune range of a block.
type StyleRange struct {
	Start int
	End   int
	Tag   StyleTag
}

// Range returns the covered rune range.
func (s StyleRange) Range() Range {
	return Range{Start: s.Start, End: s.End}
}

// String returns a human-readable representation of the style range.
func (s StyleRange) String() string {
	return fmt.Sprintf("%s%s", s.Tag, s.Range())
}

// validateStyles checks the block invariants for a set of style ranges.
func validateStyles(styles []StyleRange, length int) error {
	for _, s := range styles {
		if !s.Tag.IsKnown() {
			return fmt.Errorf("%w: %q", ErrUnknownStyle, s.Tag)
		}
		if s.Start < 0 || s.End > length {
			return fmt.Errorf("%w: %s in block of length %d", ErrOffsetOutOfRange, s, length)
		}
		if s.Start >= s.End {
			return fmt.Errorf("%w: %s", ErrRangeInvalid, s)
		}
	}

	sorted := sortedByTag(styles)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Tag == cur.Tag && prev.End > cur.Start {
			return fmt.Errorf("%w: %s and %s", ErrStylesOverlap, prev, cur)
		}
	}
	return nil
}

// canonicalStyles merges overlapping and adjacent ranges of the same tag,
// drops empty ranges and sorts the result by start offset, then tag.
func canonicalStyles(styles []StyleRange) []StyleRange {
	if len(styles) == 0 {
		return nil
	}

	sorted := sortedByTag(styles)
	out := make([]StyleRange, 0, len(sorted))
	for _, s := range sorted {
		if s.Start >= s.End {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Tag == s.Tag && out[n-1].End >= s.Start {
			if s.End > out[n-1].End {
				out[n-1].End = s.End
			}
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedByTag(styles []StyleRange) []StyleRange {
	sorted := make([]StyleRange, len(styles))
	copy(sorted, styles)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Tag != sorted[j].Tag {
			return sorted[i].Tag < sorted[j].Tag
		}
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// addStyle applies tag over r.
func addStyle(styles []StyleRange, r Range, tag StyleTag) []StyleRange {
	out := make([]StyleRange, 0, len(styles)+1)
	out = append(out, styles...)
	out = append(out, StyleRange{Start: r.Start, End: r.End, Tag: tag})
	return canonicalStyles(out)
}

// removeStyle removes tag from r, splitting ranges that extend past it.
func removeStyle(styles []StyleRange, r Range, tag StyleTag) []StyleRange {
	out := make([]StyleRange, 0, len(styles)+1)
	for _, s := range styles {
		if s.Tag != tag || s.End <= r.Start || s.Start >= r.End {
			out = append(out, s)
			continue
		}
		if s.Start < r.Start {
			out = append(out, StyleRange{Start: s.Start, End: r.Start, Tag: tag})
		}
		if s.End > r.End {
			out = append(out, StyleRange{Start: r.End, End: s.End, Tag: tag})
		}
	}
	return canonicalStyles(out)
}

// covers reports whether tag is applied to every offset of r.
// Requires canonical styles, where a covered range lies in a single entry.
func covers(styles []StyleRange, r Range, tag StyleTag) bool {
	for _, s := range styles {
		if s.Tag == tag && s.Range().ContainsRange(r) {
			return true
		}
	}
	return false
}

// shiftStyles maps style endpoints across a replacement of [start, end)
// with inserted runes.
func shiftStyles(styles []StyleRange, start, end, inserted int) []StyleRange {
	delta := inserted - (end - start)

	mapStart := func(o int) int {
		switch {
		case o < start:
			return o
		case o >= end:
			return o + delta
		default:
			return start + inserted
		}
	}
	mapEnd := func(o int) int {
		switch {
		case o <= start:
			return o
		case o > end:
			return o + delta
		default:
			return start
		}
	}

	out := make([]StyleRange, 0, len(styles))
	for _, s := range styles {
		ns, ne := mapStart(s.Start), mapEnd(s.End)
		if ns < ne {
			out = append(out, StyleRange{Start: ns, End: ne, Tag: s.Tag})
		}
	}
	return canonicalStyles(out)
}

// sliceStyles clips styles to [from, to) and rebases them to start at 0.
func sliceStyles(styles []StyleRange, from, to int) []StyleRange {
	out := make([]StyleRange, 0, len(styles))
	for _, s := range styles {
		ns, ne := max(s.Start, from), min(s.End, to)
		if ns < ne {
			out = append(out, StyleRange{Start: ns - from, End: ne - from, Tag: s.Tag})
		}
	}
	return canonicalStyles(out)
}

// offsetStyles shifts every range by delta.
func offsetStyles(styles []StyleRange, delta int) []StyleRange {
	out := make([]StyleRange, len(styles))
	for i, s := range styles {
		out[i] = StyleRange{Start: s.Start + delta, End: s.End + delta, Tag: s.Tag}
	}
	return out
}

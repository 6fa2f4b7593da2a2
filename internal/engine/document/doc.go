// Package document provides the immutable rich-text document model.
//
// A Document is an ordered, never-empty sequence of Blocks. Each Block has a
// stable key, a block type, its text, and a set of inline style ranges.
// Every operation in this package is a pure function: it returns a new
// Document and leaves its input untouched, so a Document can be shared
// freely between the renderer and the editing core.
//
// Offsets:
//
// All offsets count Unicode code points (runes) within a block's text.
// Ranges are half-open: [Start, End).
//
// Style ranges:
//
// For any given tag, the ranges of a block never overlap. Blocks keep their
// ranges in canonical form: adjacent ranges of the same tag are merged and
// the list is sorted by start offset, then tag. Canonical form is what makes
// structural equality (Equal) meaningful after a sequence of edits.
//
// Basic usage:
//
//	doc := document.New()
//	key := doc.First().Key()
//
//	doc, _ = document.ReplaceRange(doc, key, 0, 0, "Hello, World")
//	doc, _ = document.ToggleInlineStyle(doc, key, document.NewRange(0, 5), document.Bold)
//	doc, _ = document.SetBlockType(doc, key, document.HeaderOne)
package document

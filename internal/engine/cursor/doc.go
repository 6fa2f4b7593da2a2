// Package cursor provides the selection model for the editing core.
//
// A Selection addresses a single block by key and a rune range inside it.
// Anchor is where the selection started and Focus is where typing occurs;
// when they are equal the selection is collapsed to a plain cursor.
// Selection is an immutable value type.
package cursor

// Package engine provides the editor state for the rich-text core.
//
// The engine package serves as the facade over the document and cursor
// sub-packages. A State bundles the current Document, the Selection being
// edited, and the pending inline style override that a collapsed style
// toggle leaves behind for the next typed characters.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - document: immutable blocks, inline style ranges and pure edits
//   - cursor: the selection model
//
// # Immutability
//
// State is a value type. Every operation returns a new State and leaves the
// receiver untouched, so a renderer may keep the previous State for display
// while the core computes the next one. There is no shared mutable state and
// therefore no locking.
//
// # Basic Usage
//
//	st := engine.NewState(document.New())
//
//	st, _ = st.InsertText("Hello")
//	st, _ = st.WithSelection(cursor.NewSelection(st.Selection().BlockKey, 0, 5))
//	st, _ = st.ToggleInlineStyle(document.Bold)
//
// # Inline Style Override
//
// Toggling a style on a collapsed selection cannot change any text, so it is
// recorded as an override instead. The next InsertText applies the override
// to the inserted runes and clears it. Moving the selection or replacing the
// document also clears it.
package engine

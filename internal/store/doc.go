// Package store persists document snapshots.
//
// Three backends are provided:
//
//   - DiskvStore keeps named documents in a diskv key/value tree.
//   - FileStore keeps one document in a single JSON file, written
//     atomically, and can watch that file for external changes.
//   - MemoryStore keeps documents in memory, for tests and scratch sessions.
//
// All backends store the encoded snapshot form, so a Load returns exactly
// what was saved and a corrupt file surfaces as snapshot.ErrMalformedSnapshot.
package store

// Package autocorrect implements markdown-like input shortcuts.
//
// Before a character is inserted, the renderer hands the pending character
// and the current editor state to an Engine. The engine compares the text of
// the active block from its start up to the cursor (the prefix) with an
// ordered table of rules. Each rule pairs a trigger string and a required
// character with an action. When a rule matches, the trigger text is
// deleted, the action is applied, and the keystroke is reported as handled
// so the character itself is never inserted.
//
// # Default Rules
//
// The default table, in evaluation order:
//
//	"***" + space  toggle UNDERLINE
//	"**"  + space  toggle RED
//	"*"   + space  toggle BOLD
//	"#"   + space  set block type header-one
//
// Rules are evaluated longest trigger first, so "**" is never shadowed by
// "*". New shortcuts are added by appending rules; the engine keeps the
// ordering.
//
// # Matching
//
// A rule matches only when the whole prefix equals the trigger. A block
// holding "x#" with the cursor at its end does not trigger the "#" rule.
// Only collapsed selections are considered.
package autocorrect

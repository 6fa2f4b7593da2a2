package autocorrect

import "github.com/dshills/inkwell/internal/engine/document"

// DefaultRules returns the built-in shortcut table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Trigger: "***", Char: ' ', Action: ToggleStyle{Tag: document.Underline}},
		{Trigger: "**", Char: ' ', Action: ToggleStyle{Tag: document.Red}},
		{Trigger: "*", Char: ' ', Action: ToggleStyle{Tag: document.Bold}},
		{Trigger: "#", Char: ' ', Action: SetBlockType{Type: document.HeaderOne}},
	}
}

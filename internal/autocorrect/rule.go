package autocorrect

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/document"
)

// ErrInvalidRule indicates a rule definition that cannot be used.
var ErrInvalidRule = errors.New("invalid autocorrect rule")

// Action is the mutation a rule applies once its trigger text is removed.
type Action interface {
	// Apply mutates the state whose cursor sits where the trigger was.
	Apply(st engine.State) (engine.State, error)

	// String returns a short description for logs.
	String() string
}

// ToggleStyle toggles an inline style for the text typed next.
type ToggleStyle struct {
	Tag document.StyleTag
}

// Apply implements Action.
func (a ToggleStyle) Apply(st engine.State) (engine.State, error) {
	return st.ToggleInlineStyle(a.Tag)
}

func (a ToggleStyle) String() string {
	return "toggle " + string(a.Tag)
}

// SetBlockType sets the type of the active block.
type SetBlockType struct {
	Type document.BlockType
}

// Apply implements Action.
func (a SetBlockType) Apply(st engine.State) (engine.State, error) {
	return st.SetBlockType(a.Type)
}

func (a SetBlockType) String() string {
	return "set block type " + string(a.Type)
}

// Rule pairs a trigger with the character that fires it and the resulting
// action.
type Rule struct {
	// Trigger must equal the whole block text before the cursor.
	Trigger string
	// Char is the incoming character that fires the rule.
	Char rune
	// Action is applied after the trigger text is deleted.
	Action Action
}

// Matches reports whether the rule fires for prefix followed by ch.
func (r Rule) Matches(prefix string, ch rune) bool {
	return ch == r.Char && prefix == r.Trigger
}

// String returns a human-readable representation of the rule.
func (r Rule) String() string {
	return fmt.Sprintf("%q+%q -> %s", r.Trigger, r.Char, r.Action)
}

// Validate checks that the rule can fire and do something.
func (r Rule) Validate() error {
	if r.Trigger == "" {
		return fmt.Errorf("%w: empty trigger", ErrInvalidRule)
	}
	if r.Action == nil {
		return fmt.Errorf("%w: %q has no action", ErrInvalidRule, r.Trigger)
	}
	switch a := r.Action.(type) {
	case ToggleStyle:
		if !a.Tag.IsKnown() {
			return fmt.Errorf("%w: %q: %w", ErrInvalidRule, r.Trigger, document.ErrUnknownStyle)
		}
	case SetBlockType:
		if !a.Type.IsKnown() {
			return fmt.Errorf("%w: %q: %w", ErrInvalidRule, r.Trigger, document.ErrUnknownBlockType)
		}
	}
	return nil
}

// RuleSpec is the configuration form of a rule. Exactly one of Style and
// BlockType must be set.
type RuleSpec struct {
	Trigger   string
	Char      string
	Style     string
	BlockType string
}

// ParseRule converts a RuleSpec into a Rule. An empty Char means space.
func ParseRule(spec RuleSpec) (Rule, error) {
	ch := ' '
	if spec.Char != "" {
		r, size := utf8.DecodeRuneInString(spec.Char)
		if size != len(spec.Char) {
			return Rule{}, fmt.Errorf("%w: char %q must be a single character", ErrInvalidRule, spec.Char)
		}
		ch = r
	}

	rule := Rule{Trigger: spec.Trigger, Char: ch}
	switch {
	case spec.Style != "" && spec.BlockType != "":
		return Rule{}, fmt.Errorf("%w: %q sets both style and block type", ErrInvalidRule, spec.Trigger)
	case spec.Style != "":
		rule.Action = ToggleStyle{Tag: document.StyleTag(spec.Style)}
	case spec.BlockType != "":
		rule.Action = SetBlockType{Type: document.BlockType(spec.BlockType)}
	}

	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

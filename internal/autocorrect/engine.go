package autocorrect

import (
	"sort"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/document"
)

// Engine evaluates an ordered rule table against pending character
// insertions. An Engine is immutable after construction.
type Engine struct {
	rules []Rule
}

// New creates an engine for the given rules. Rules are ordered by trigger
// length, longest first; rules with equal trigger lengths keep the order
// they were given in.
func New(rules ...Rule) *Engine {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].Trigger) > utf8.RuneCountInString(sorted[j].Trigger)
	})
	return &Engine{rules: sorted}
}

// NewDefault creates an engine with DefaultRules.
func NewDefault() *Engine {
	return New(DefaultRules()...)
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// With returns a new engine with extra rules appended to the table.
func (e *Engine) With(rules ...Rule) *Engine {
	all := make([]Rule, 0, len(e.rules)+len(rules))
	all = append(all, e.rules...)
	all = append(all, rules...)
	return New(all...)
}

// Match returns the first rule that fires for prefix followed by ch.
func (e *Engine) Match(prefix string, ch rune) (Rule, bool) {
	for _, r := range e.rules {
		if r.Matches(prefix, ch) {
			return r, true
		}
	}
	return Rule{}, false
}

// HandleBeforeInput runs the rule table for ch about to be inserted into
// st. On a match it returns the transformed state and engine.Handled; the
// caller must not insert ch. Otherwise it returns st unchanged and
// engine.NotHandled.
func (e *Engine) HandleBeforeInput(st engine.State, ch rune) (engine.State, engine.Outcome) {
	next, _, ok := e.apply(st, ch)
	if !ok {
		return st, engine.NotHandled
	}
	return next, engine.Handled
}

// Explain is like HandleBeforeInput but also returns the rule that fired.
func (e *Engine) Explain(st engine.State, ch rune) (engine.State, Rule, engine.Outcome) {
	next, rule, ok := e.apply(st, ch)
	if !ok {
		return st, Rule{}, engine.NotHandled
	}
	return next, rule, engine.Handled
}

func (e *Engine) apply(st engine.State, ch rune) (engine.State, Rule, bool) {
	sel := st.Selection()
	if !sel.IsCollapsed() {
		return st, Rule{}, false
	}
	b, err := st.ActiveBlock()
	if err != nil {
		return st, Rule{}, false
	}

	prefix := b.TextRange(document.NewRange(0, sel.Focus))
	rule, ok := e.Match(prefix, ch)
	if !ok {
		return st, Rule{}, false
	}

	next, err := st.DeleteRange(0, sel.Focus)
	if err != nil {
		return st, Rule{}, false
	}
	next, err = rule.Action.Apply(next)
	if err != nil {
		return st, Rule{}, false
	}
	return next, rule, true
}

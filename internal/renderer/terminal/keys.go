package terminal

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyHome:   "home",
	tcell.KeyEnd:    "end",
	tcell.KeyPgUp:   "pgup",
	tcell.KeyPgDn:   "pgdn",
	tcell.KeyDelete: "delete",
	tcell.KeyInsert: "insert",
	tcell.KeyF1:     "f1",
	tcell.KeyF2:     "f2",
	tcell.KeyF3:     "f3",
	tcell.KeyF4:     "f4",
	tcell.KeyF5:     "f5",
	tcell.KeyF6:     "f6",
	tcell.KeyF7:     "f7",
	tcell.KeyF8:     "f8",
	tcell.KeyF9:     "f9",
	tcell.KeyF10:    "f10",
	tcell.KeyF11:    "f11",
	tcell.KeyF12:    "f12",
}

// KeyNames returns the keymap names ev can be bound under, most specific
// first. Plain printable runes have no name.
//
// Tab and Ctrl+I are the same key on most terminals, so tab falls back to
// a ctrl+i binding.
func KeyNames(ev *tcell.EventKey) []string {
	k, mod := ev.Key(), ev.Modifiers()

	switch {
	case k == tcell.KeyRune:
		r := string(unicode.ToLower(ev.Rune()))
		switch {
		case mod&tcell.ModCtrl != 0:
			return []string{"ctrl+" + r}
		case mod&tcell.ModAlt != 0:
			return []string{"alt+" + r}
		default:
			return nil
		}
	case k == tcell.KeyEnter:
		return []string{"enter"}
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return []string{"backspace"}
	case k == tcell.KeyTab:
		return []string{"tab", "ctrl+i"}
	case k == tcell.KeyEscape:
		return []string{"esc"}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return []string{"ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA)))}
	}

	if name, ok := specialKeys[k]; ok {
		return []string{modifierPrefix(mod) + name}
	}
	return nil
}

func modifierPrefix(mod tcell.ModMask) string {
	var b strings.Builder
	if mod&tcell.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if mod&tcell.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if mod&tcell.ModShift != 0 {
		b.WriteString("shift+")
	}
	return b.String()
}

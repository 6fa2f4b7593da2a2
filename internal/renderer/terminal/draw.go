package terminal

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/document"
)

var (
	statusStyle = tcell.StyleDefault.Reverse(true)
	markerStyle = tcell.StyleDefault.Dim(true)
)

// Draw renders the session state and the status line, then shows the
// screen. One block occupies one row; long blocks are clipped.
func (e *Editor) Draw() {
	e.screen.Clear()
	width, height := e.screen.Size()
	rows := height - 1
	if rows < 1 || width < 1 {
		e.screen.Show()
		return
	}

	st := e.session.State()
	doc, sel := st.Document(), st.Selection()
	e.scrollTo(doc.Index(sel.BlockKey), rows)

	cursorX, cursorY := -1, -1
	ordinal := 0
	for i, b := range doc.Blocks() {
		if b.Type() == document.OrderedListItem {
			ordinal++
		} else {
			ordinal = 0
		}
		y := i - e.top
		if y < 0 || y >= rows {
			continue
		}
		x := e.drawBlock(y, width, b, ordinal, sel)
		if x >= 0 {
			cursorX, cursorY = min(x, width-1), y
		}
	}

	e.drawStatus(height-1, width, st.Document().Len(), sel)

	if cursorY >= 0 {
		e.screen.ShowCursor(cursorX, cursorY)
	} else {
		e.screen.HideCursor()
	}
	e.screen.Show()
}

// scrollTo keeps the block at index within the visible rows.
func (e *Editor) scrollTo(index, rows int) {
	if index < e.top {
		e.top = index
	}
	if index >= e.top+rows {
		e.top = index - rows + 1
	}
	if e.top < 0 {
		e.top = 0
	}
}

// drawBlock draws b on row y and returns the cursor column if the
// selection focus lies in b, or -1.
func (e *Editor) drawBlock(y, width int, b document.Block, ordinal int, sel cursor.Selection) int {
	x := 0
	if marker := blockMarker(b.Type(), ordinal); marker != "" {
		x = e.drawString(x, y, width, marker, markerStyle)
	}

	runes := []rune(b.Text())
	active := b.Key() == sel.BlockKey
	cursorX := -1
	if active {
		cursorX = x + runewidth.StringWidth(string(runes[:sel.Focus]))
	}

	base := blockStyle(b.Type())
	for i, r := range runes {
		s := base
		for _, tag := range b.StylesAt(i) {
			s = tagStyle(s, tag)
		}
		if active && i >= sel.Start() && i < sel.End() {
			s = s.Reverse(true)
		}
		w := runewidth.RuneWidth(r)
		if x+w > width {
			break
		}
		e.screen.SetContent(x, y, r, nil, s)
		x += w
	}
	return cursorX
}

func (e *Editor) drawStatus(y, width, blocks int, sel cursor.Selection) {
	for x := 0; x < width; x++ {
		e.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	left := " inkwell"
	if e.session.Dirty() {
		left += " [+]"
	}
	if b, ok := e.session.State().Document().Block(sel.BlockKey); ok {
		left += "  " + string(b.Type())
	}
	left += "  " + strconv.Itoa(blocks) + " blocks"
	x := e.drawString(0, y, width, left, statusStyle)

	if e.status != "" {
		right := e.status + " "
		start := width - runewidth.StringWidth(right)
		if start < x+1 {
			start = x + 1
		}
		e.drawString(start, y, width, right, statusStyle)
	}
}

// drawString draws s from column x and returns the column after it.
func (e *Editor) drawString(x, y, width int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if x+w > width {
			break
		}
		e.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func blockStyle(typ document.BlockType) tcell.Style {
	s := tcell.StyleDefault
	switch typ {
	case document.HeaderOne:
		s = s.Bold(true).Underline(true)
	case document.HeaderTwo, document.HeaderThree:
		s = s.Bold(true)
	case document.Blockquote:
		s = s.Italic(true)
	case document.CodeBlock:
		s = s.Foreground(tcell.ColorTeal)
	}
	return s
}

func tagStyle(s tcell.Style, tag document.StyleTag) tcell.Style {
	switch tag {
	case document.Bold:
		return s.Bold(true)
	case document.Italic:
		return s.Italic(true)
	case document.Underline:
		return s.Underline(true)
	case document.Code:
		return s.Foreground(tcell.ColorTeal)
	case document.Strikethrough:
		return s.StrikeThrough(true)
	case document.Red:
		return s.Foreground(tcell.ColorRed)
	default:
		return s
	}
}

func blockMarker(typ document.BlockType, ordinal int) string {
	switch typ {
	case document.Blockquote:
		return "│ "
	case document.UnorderedListItem:
		return "• "
	case document.OrderedListItem:
		return strconv.Itoa(ordinal) + ". "
	case document.CodeBlock:
		return "  "
	default:
		return ""
	}
}

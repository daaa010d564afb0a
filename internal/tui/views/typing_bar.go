package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/tui/ui"
)

// TypingBar shows the remote typing indicator above the composer.
type TypingBar struct {
	*tview.TextView
	theme *ui.Theme
}

// NewTypingBar creates an empty typing indicator line.
func NewTypingBar(theme *ui.Theme) *TypingBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &TypingBar{TextView: tv, theme: theme}
}

// Update shows who is typing, or clears the line when username is empty.
func (tb *TypingBar) Update(username string) {
	tb.Clear()
	if username == "" {
		return
	}
	_, _ = fmt.Fprintf(tb, " [%s::i]%s is typing...[-:-:-]",
		colorName(tb.theme.TypingColor), tview.Escape(sanitizeForTerminal(username)))
}

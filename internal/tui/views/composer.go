package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/tui/ui"
)

// Composer is the text input for sending messages. Every keystroke feeds the
// typing coordinator through onChange; Enter hands the text to onSend.
type Composer struct {
	*tview.InputField
	onSend   func(text string)
	onChange func(text string)
}

// NewComposer creates the message composer.
func NewComposer(theme *ui.Theme) *Composer {
	input := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.BorderFocusColor)

	c := &Composer{InputField: input}

	input.SetChangedFunc(func(text string) {
		if c.onChange != nil {
			c.onChange(text)
		}
	})

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && c.onSend != nil {
			if text := c.GetText(); text != "" {
				c.onSend(text)
			}
		}
	})

	return c
}

// SetOnSend sets the callback for a submitted message.
func (c *Composer) SetOnSend(fn func(text string)) {
	c.onSend = fn
}

// SetOnChange sets the callback for input edits.
func (c *Composer) SetOnChange(fn func(text string)) {
	c.onChange = fn
}

// InsertText appends text at the end of the current input.
func (c *Composer) InsertText(text string) {
	c.SetText(c.GetText() + text)
}

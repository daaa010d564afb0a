package views

import (
	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/tui/ui"
)

// palette is the emoji set offered by the picker. Composite emoji are left
// out; they degrade badly in terminals (see sanitizeForTerminal).
var palette = []string{
	"😀", "😃", "😄", "😁", "😆", "😅", "😂", "🤣",
	"😊", "😇", "🙂", "🙃", "😉", "😌", "😍", "🥰",
	"😘", "😗", "😙", "😚", "😋", "😛", "😝", "😜",
	"🤪", "🤨", "🧐", "🤓", "😎", "🤩", "🥳", "😏",
	"😒", "😞", "😔", "😟", "😕", "🙁", "😣", "😖",
	"😫", "😩", "🥺", "😢", "😭", "😤", "😠", "😡",
	"🤬", "🤯", "😳", "🥵", "🥶", "😱", "😨", "😰",
	"😥", "😓", "🤗", "🤔", "🤭", "🤫", "🤥", "😶",
	"😐", "😑", "😬", "🙄", "😯", "😦", "😧", "😮",
	"😲", "🥱", "😴", "🤤", "😪", "😵", "🤐", "🥴",
	"🤢", "🤮", "🤧", "😷", "🤒", "🤕", "🤑", "🤠",
	"😈", "👿", "👹", "👺", "🤡", "💩", "👻", "💀",
	"👽", "👾", "🤖", "🎃", "😺", "😸",
}

const paletteColumns = 8

// EmojiPicker is a grid of emoji to insert into the composer.
type EmojiPicker struct {
	*tview.Table
	onPick func(emoji string)
}

// NewEmojiPicker creates the emoji grid.
func NewEmojiPicker(theme *ui.Theme) *EmojiPicker {
	table := tview.NewTable().
		SetSelectable(true, true)
	table.SetBorder(true).SetTitle(" Emoji ")
	table.SetBackgroundColor(theme.BgColor)
	table.SetTitleColor(theme.TitleColor)
	table.SetBorderColor(theme.BorderFocusColor)

	p := &EmojiPicker{Table: table}

	for i, emoji := range palette {
		cell := tview.NewTableCell(" " + emoji + " ").
			SetAlign(tview.AlignCenter)
		table.SetCell(i/paletteColumns, i%paletteColumns, cell)
	}

	table.SetSelectedFunc(func(row, col int) {
		idx := row*paletteColumns + col
		if idx < len(palette) && p.onPick != nil {
			p.onPick(palette[idx])
		}
	})

	return p
}

// SetOnPick sets the callback for a chosen emoji.
func (p *EmojiPicker) SetOnPick(fn func(emoji string)) {
	p.onPick = fn
}

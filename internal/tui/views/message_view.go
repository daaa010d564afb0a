// Package views contains the tview widgets of the chat screen.
package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/pipeline"
	"github.com/Prantik123321/Chat-all/internal/tui/ui"
	"github.com/Prantik123321/Chat-all/internal/wire"
)

// MessageView displays the message feed. Live messages append without
// re-rendering what is already on screen; only a history load rebuilds the
// whole view.
type MessageView struct {
	*tview.TextView
	theme *ui.Theme
	empty bool
}

// NewMessageView creates the feed view showing the welcome placeholder.
func NewMessageView(theme *ui.Theme) *MessageView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Chat-Box ")
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTitleColor(theme.TitleColor)
	tv.SetBorderColor(theme.BorderColor)

	mv := &MessageView{TextView: tv, theme: theme}
	mv.showWelcome()
	return mv
}

// Append renders one new entry at the bottom of the feed. The first entry
// replaces the welcome placeholder.
func (mv *MessageView) Append(e pipeline.Entry) {
	if mv.empty {
		mv.Clear()
		mv.empty = false
	}
	_, _ = fmt.Fprint(mv, mv.render(e))
	mv.ScrollToEnd()
}

// Reload rebuilds the whole feed, typically after a history load. An empty
// feed shows the welcome placeholder again.
func (mv *MessageView) Reload(entries []pipeline.Entry) {
	mv.Clear()
	if len(entries) == 0 {
		mv.showWelcome()
		return
	}
	mv.empty = false
	for _, e := range entries {
		_, _ = fmt.Fprint(mv, mv.render(e))
	}
	mv.ScrollToEnd()
}

func (mv *MessageView) render(e pipeline.Entry) string {
	if e.Kind == wire.TypeSystem {
		return fmt.Sprintf("[%s::i]%s[-:-:-]\n\n",
			colorName(mv.theme.SystemColor), tview.Escape(sanitizeForTerminal(e.Body)))
	}

	senderColor := mv.theme.SenderColor
	if e.Outgoing {
		senderColor = mv.theme.OwnSenderColor
	}
	header := fmt.Sprintf("[%s::b]%s[-:-:-] [%s::d]%s[-:-:-]\n",
		colorName(senderColor), tview.Escape(sanitizeForTerminal(e.Sender)),
		colorName(mv.theme.TimeColor), e.SentAt.Format("15:04"))

	var body string
	switch e.Kind {
	case wire.TypeImage, wire.TypeVideo:
		body = fmt.Sprintf("[::b]%s[-:-:-] %s",
			tview.Escape("["+e.Kind+"]"), tview.Escape(sanitizeForTerminal(e.FileName)))
	default:
		body = pipeline.Linkify(tview.Escape(sanitizeForTerminal(e.Body)))
	}
	return header + body + "\n\n"
}

func (mv *MessageView) showWelcome() {
	mv.empty = true
	mv.Clear()
	welcome := fmt.Sprintf(
		"\n[%s::b]Welcome to Chat-Box![-:-:-]\n\n"+
			"[%s]You're now connected to the public chat room[-]\n\n"+
			"[%s]Start typing to send a message\n"+
			"Press Ctrl-A to share an image or video\n"+
			"Press Ctrl-E to add emojis[-]\n",
		colorName(mv.theme.TitleColor),
		colorName(mv.theme.FgColor),
		colorName(mv.theme.SystemColor))
	_, _ = fmt.Fprint(mv, welcome)
}

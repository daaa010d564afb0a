package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/staging"
	"github.com/Prantik123321/Chat-all/internal/tui/ui"
)

// AttachPrompt asks for the path of a file to share.
type AttachPrompt struct {
	*tview.InputField
	onSubmit func(path string)
	onCancel func()
}

// NewAttachPrompt creates the file path prompt.
func NewAttachPrompt(theme *ui.Theme) *AttachPrompt {
	input := tview.NewInputField().
		SetLabel(" File path: ").
		SetFieldWidth(0)
	input.SetBorder(true).SetTitle(" Share image or video ")
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetTitleColor(theme.TitleColor)
	input.SetBorderColor(theme.BorderFocusColor)

	p := &AttachPrompt{InputField: input}

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			path := p.GetText()
			if path != "" && p.onSubmit != nil {
				p.onSubmit(path)
			}
		case tcell.KeyEscape:
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})

	return p
}

// SetOnSubmit sets the callback for an entered path.
func (p *AttachPrompt) SetOnSubmit(fn func(path string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback for a dismissed prompt.
func (p *AttachPrompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// AttachPreview confirms a staged attachment before sending.
type AttachPreview struct {
	*tview.Modal
	onSend   func()
	onCancel func()
}

// NewAttachPreview creates the staged attachment confirmation modal.
func NewAttachPreview(theme *ui.Theme) *AttachPreview {
	modal := tview.NewModal().
		AddButtons([]string{"Send", "Cancel"})
	modal.SetBackgroundColor(theme.BgColor)

	p := &AttachPreview{Modal: modal}

	modal.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		if buttonLabel == "Send" {
			if p.onSend != nil {
				p.onSend()
			}
			return
		}
		if p.onCancel != nil {
			p.onCancel()
		}
	})

	return p
}

// Show fills the modal with the staged attachment details.
func (p *AttachPreview) Show(staged *staging.Staged) {
	p.SetText(fmt.Sprintf("%s\n\n%s, %s", staged.FileName, staged.Kind, formatSize(staged.SizeBytes)))
}

// SetOnSend sets the callback for a confirmed send.
func (p *AttachPreview) SetOnSend(fn func()) {
	p.onSend = fn
}

// SetOnCancel sets the callback for a dismissed preview.
func (p *AttachPreview) SetOnCancel(fn func()) {
	p.onCancel = fn
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

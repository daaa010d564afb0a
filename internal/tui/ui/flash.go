package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/notify"
)

// FlashBar renders the current transient notice. Fading notices are dimmed
// until the dismiss fires.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

// NewFlashBar creates the notice bar.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &FlashBar{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the given notice, or clears the bar when notice is nil.
func (fb *FlashBar) Update(notice *notify.Notice, phase notify.Phase) {
	fb.Clear()
	if notice == nil || phase == notify.PhaseGone {
		return
	}

	var color tcell.Color
	switch notice.Severity {
	case notify.Success:
		color = fb.theme.FlashOkColor
	case notify.Error:
		color = fb.theme.FlashErrColor
	default:
		color = fb.theme.FlashInfoColor
	}

	attrs := "b"
	if phase == notify.PhaseFading {
		attrs = "d"
	}
	_, _ = fmt.Fprintf(fb, " [%s::%s]%s[-:-:-]", colorName(color), attrs, notice.Text)
}

// colorName returns a tview-compatible color name string.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/status"
	"github.com/Prantik123321/Chat-all/internal/tui/ui"
)

// StatusBar displays the profile, identity, connection state, and key hints.
type StatusBar struct {
	*tview.TextView
	theme    *ui.Theme
	profile  string
	identity string
	state    status.State
	hints    []string
}

// NewStatusBar creates the status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{
		TextView: tv,
		theme:    theme,
		state:    status.Disconnected,
	}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetIdentity updates the confirmed display name.
func (sb *StatusBar) SetIdentity(name string) {
	sb.identity = name
	sb.render()
}

// SetState updates the connection state display.
func (sb *StatusBar) SetState(s status.State) {
	sb.state = s
	sb.render()
}

// SetHints updates the keybinding hint segment.
func (sb *StatusBar) SetHints(hints []string) {
	sb.hints = hints
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	var stateColor string
	switch sb.state {
	case status.Connected:
		stateColor = colorName(sb.theme.StatusUpColor)
	case status.Connecting, status.Reconnecting:
		stateColor = colorName(sb.theme.StatusWaitColor)
	default:
		stateColor = colorName(sb.theme.StatusDownColor)
	}

	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s | [%s]%s[-]",
		sb.profile, tview.Escape(sb.identity), stateColor, sb.state)
	if len(sb.hints) > 0 {
		line += " | " + strings.Join(sb.hints, " ")
	}
	_, _ = fmt.Fprint(sb, line)
}

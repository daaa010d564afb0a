package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/Prantik123321/Chat-all/internal/tui/ui"
)

// Roster displays the online users sidebar.
type Roster struct {
	*tview.TextView
	theme *ui.Theme
}

// NewRoster creates an empty roster view.
func NewRoster(theme *ui.Theme) *Roster {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true).SetTitle(" Online (0) ")
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTitleColor(theme.TitleColor)
	tv.SetBorderColor(theme.BorderColor)

	return &Roster{TextView: tv, theme: theme}
}

// Update replaces the roster contents with the given snapshot. The local
// user gets a (You) marker.
func (r *Roster) Update(users []string, self string) {
	r.Clear()
	r.SetTitle(fmt.Sprintf(" Online (%d) ", len(users)))
	for _, user := range users {
		name := tview.Escape(sanitizeForTerminal(user))
		if user == self {
			_, _ = fmt.Fprintf(r, "[%s::b]%s (You)[-:-:-]\n",
				colorName(r.theme.RosterSelfColor), name)
			continue
		}
		_, _ = fmt.Fprintf(r, "%s\n", name)
	}
}

package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TitleColor       tcell.Color
	OwnSenderColor   tcell.Color
	SenderColor      tcell.Color
	SystemColor      tcell.Color
	TimeColor        tcell.Color
	RosterSelfColor  tcell.Color
	TypingColor      tcell.Color
	FlashInfoColor   tcell.Color
	FlashOkColor     tcell.Color
	FlashErrColor    tcell.Color
	StatusUpColor    tcell.Color
	StatusWaitColor  tcell.Color
	StatusDownColor  tcell.Color
}

// ForName returns the theme for a configured name. Unknown names fall back
// to the dark theme.
func ForName(name string) *Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// DarkTheme is the default theme.
func DarkTheme() *Theme {
	return &Theme{
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorGainsboro,
		BorderColor:      tcell.ColorDodgerBlue,
		BorderFocusColor: tcell.ColorLightSkyBlue,
		TitleColor:       tcell.ColorFuchsia,
		OwnSenderColor:   tcell.ColorAqua,
		SenderColor:      tcell.ColorOrange,
		SystemColor:      tcell.ColorGray,
		TimeColor:        tcell.ColorDarkGray,
		RosterSelfColor:  tcell.ColorAqua,
		TypingColor:      tcell.ColorDarkGray,
		FlashInfoColor:   tcell.ColorNavajoWhite,
		FlashOkColor:     tcell.ColorGreen,
		FlashErrColor:    tcell.ColorOrangeRed,
		StatusUpColor:    tcell.ColorGreen,
		StatusWaitColor:  tcell.ColorOrange,
		StatusDownColor:  tcell.ColorOrangeRed,
	}
}

// LightTheme is an alternative for bright terminals.
func LightTheme() *Theme {
	return &Theme{
		BgColor:          tcell.ColorWhite,
		FgColor:          tcell.ColorBlack,
		BorderColor:      tcell.ColorNavy,
		BorderFocusColor: tcell.ColorBlue,
		TitleColor:       tcell.ColorDarkMagenta,
		OwnSenderColor:   tcell.ColorDarkCyan,
		SenderColor:      tcell.ColorDarkRed,
		SystemColor:      tcell.ColorGray,
		TimeColor:        tcell.ColorGray,
		RosterSelfColor:  tcell.ColorDarkCyan,
		TypingColor:      tcell.ColorGray,
		FlashInfoColor:   tcell.ColorDarkBlue,
		FlashOkColor:     tcell.ColorDarkGreen,
		FlashErrColor:    tcell.ColorDarkRed,
		StatusUpColor:    tcell.ColorDarkGreen,
		StatusWaitColor:  tcell.ColorOrange,
		StatusDownColor:  tcell.ColorDarkRed,
	}
}

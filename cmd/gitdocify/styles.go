package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgWhite)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

type styles struct {
	title    lipgloss.Style
	inactive lipgloss.Style
	error    lipgloss.Style
	success  lipgloss.Style
	running  lipgloss.Style
	spinner  lipgloss.Style
}

// ThemeName is shared by the progress view and the glamour preview.
type ThemeName string

const (
	ThemeDark       ThemeName = "dark"
	ThemeLight      ThemeName = "light"
	ThemeDracula    ThemeName = "dracula"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemePink       ThemeName = "pink"
)

type ThemePalette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Inactive  lipgloss.Color
}

var palettes = map[ThemeName]ThemePalette{
	ThemeDark: {
		Primary:   lipgloss.Color("51"),
		Secondary: lipgloss.Color("33"),
		Success:   lipgloss.Color("46"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeLight: {
		Primary:   lipgloss.Color("25"),
		Secondary: lipgloss.Color("130"), // amber
		Success:   lipgloss.Color("28"),
		Error:     lipgloss.Color("160"),
		Inactive:  lipgloss.Color("245"),
	},
	ThemeDracula: {
		Primary:   lipgloss.Color("141"), // purple
		Secondary: lipgloss.Color("117"), // cyan
		Success:   lipgloss.Color("84"),  // green
		Error:     lipgloss.Color("203"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeTokyoNight: {
		Primary:   lipgloss.Color("111"),
		Secondary: lipgloss.Color("141"),
		Success:   lipgloss.Color("149"),
		Error:     lipgloss.Color("204"),
		Inactive:  lipgloss.Color("59"),
	},
	ThemePink: {
		Primary:   lipgloss.Color("201"), // magenta
		Secondary: lipgloss.Color("213"), // pink
		Success:   lipgloss.Color("51"),  // cyan
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
}

func ListThemes() []ThemeName {
	return []ThemeName{ThemeDark, ThemeLight, ThemeDracula, ThemeTokyoNight, ThemePink}
}

func GetTheme(theme ThemeName) styles {
	if palette, ok := palettes[theme]; ok {
		return newStylesFromPalette(palette)
	}
	return newStylesFromPalette(palettes[ThemeDark])
}

func newStylesFromPalette(p ThemePalette) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		inactive: lipgloss.NewStyle().Foreground(p.Inactive),
		error:    lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		success:  lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		running:  lipgloss.NewStyle().Foreground(p.Secondary).Italic(true),
		spinner:  lipgloss.NewStyle().Foreground(p.Primary),
	}
}

// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for badges, section titles)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Timestamps, hints
	TextInverse string // Text on colored backgrounds

	// Feed colors
	Author       string // Chat author when the message carries no color
	Follow       string // Follow activity rows
	Donation     string // Donation activity rows
	Subscription string // Subscription activity rows

	// Semantic colors
	Warning string
	Error   string
	Info    string
	Success string

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:         "Dark Purple",
		Primary:      "#9146FF",
		Secondary:    "#06B6D4",
		Bg:           "#1F2937",
		Text:         "#F9FAFB",
		TextMuted:    "#9CA3AF",
		TextInverse:  "#1F2937",
		Author:       "#A78BFA",
		Follow:       "#60A5FA",
		Donation:     "#4ADE80",
		Subscription: "#C084FC",
		Warning:      "#F59E0B",
		Error:        "#EF4444",
		Info:         "#06B6D4",
		Success:      "#10B981",
		Border:       "#374151",
	},
	ThemeNord: {
		Name:         "Nord",
		Primary:      "#88C0D0",
		Secondary:    "#81A1C1",
		Bg:           "#2E3440",
		Text:         "#ECEFF4",
		TextMuted:    "#D8DEE9",
		TextInverse:  "#2E3440",
		Author:       "#A3BE8C",
		Follow:       "#81A1C1",
		Donation:     "#A3BE8C",
		Subscription: "#B48EAD",
		Warning:      "#EBCB8B",
		Error:        "#BF616A",
		Info:         "#81A1C1",
		Success:      "#A3BE8C",
		Border:       "#4C566A",
	},
	ThemeDracula: {
		Name:         "Dracula",
		Primary:      "#BD93F9",
		Secondary:    "#8BE9FD",
		Bg:           "#282A36",
		Text:         "#F8F8F2",
		TextMuted:    "#6272A4",
		TextInverse:  "#282A36",
		Author:       "#FF79C6",
		Follow:       "#8BE9FD",
		Donation:     "#50FA7B",
		Subscription: "#BD93F9",
		Warning:      "#FFB86C",
		Error:        "#FF5555",
		Info:         "#8BE9FD",
		Success:      "#50FA7B",
		Border:       "#44475A",
	},
	ThemeGruvbox: {
		Name:         "Gruvbox Dark",
		Primary:      "#FE8019",
		Secondary:    "#83A598",
		Bg:           "#282828",
		Text:         "#EBDBB2",
		TextMuted:    "#A89984",
		TextInverse:  "#282828",
		Author:       "#FABD2F",
		Follow:       "#83A598",
		Donation:     "#B8BB26",
		Subscription: "#D3869B",
		Warning:      "#FE8019",
		Error:        "#FB4934",
		Info:         "#83A598",
		Success:      "#B8BB26",
		Border:       "#504945",
	},
	ThemeTokyoNight: {
		Name:         "Tokyo Night",
		Primary:      "#7AA2F7",
		Secondary:    "#BB9AF7",
		Bg:           "#1A1B26",
		Text:         "#C0CAF5",
		TextMuted:    "#565F89",
		TextInverse:  "#1A1B26",
		Author:       "#9ECE6A",
		Follow:       "#7DCFFF",
		Donation:     "#9ECE6A",
		Subscription: "#BB9AF7",
		Warning:      "#E0AF68",
		Error:        "#F7768E",
		Info:         "#7DCFFF",
		Success:      "#9ECE6A",
		Border:       "#3B4261",
	},
	ThemeLight: {
		Name:         "Light",
		Primary:      "#6366F1",
		Secondary:    "#0891B2",
		Bg:           "#FFFFFF",
		BgSelected:   "#E0E7FF",
		Text:         "#1F2937",
		TextMuted:    "#6B7280",
		TextInverse:  "#FFFFFF",
		Author:       "#7C3AED",
		Follow:       "#2563EB",
		Donation:     "#16A34A",
		Subscription: "#7C3AED",
		Warning:      "#D97706",
		Error:        "#DC2626",
		Info:         "#0891B2",
		Success:      "#16A34A",
		Border:       "#D1D5DB",
		BorderFocus:  "#6366F1",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentTheme = BuiltinThemes[name]
	currentThemeName = name
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorAuthor = lipgloss.Color(t.Author)
	ColorFollow = lipgloss.Color(t.Follow)
	ColorDonation = lipgloss.Color(t.Donation)
	ColorSubscription = lipgloss.Color(t.Subscription)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	buildStyles()
}

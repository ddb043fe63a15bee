package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, regenerated from the active theme by SetTheme
var (
	ColorPrimary      color.Color = lipgloss.Color("#9146FF") // Twitch purple
	ColorSecondary    color.Color = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted        color.Color = lipgloss.Color("#6B7280") // Gray
	ColorBorder       color.Color = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus  color.Color = lipgloss.Color("#9146FF")
	ColorBg           color.Color = lipgloss.Color("#1F2937")
	ColorText         color.Color = lipgloss.Color("#F9FAFB")
	ColorTextMuted    color.Color = lipgloss.Color("#9CA3AF")
	ColorTextInverse  color.Color = lipgloss.Color("#1F2937")
	ColorAuthor       color.Color = lipgloss.Color("#A78BFA")
	ColorFollow       color.Color = lipgloss.Color("#60A5FA")
	ColorDonation     color.Color = lipgloss.Color("#4ADE80")
	ColorSubscription color.Color = lipgloss.Color("#C084FC")
	ColorWarning      color.Color = lipgloss.Color("#F59E0B")
	ColorInfo         color.Color = lipgloss.Color("#06B6D4")
	ColorError        color.Color = lipgloss.Color("#EF4444")
	ColorSuccess      color.Color = lipgloss.Color("#10B981")
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	PanelEmptyStyle   lipgloss.Style

	// FollowIndicatorStyle marks a feed that stopped following the tail
	FollowIndicatorStyle lipgloss.Style
)

// Feed row styles
var (
	TimestampStyle lipgloss.Style
	SourceStyle    lipgloss.Style
	AuthorStyle    lipgloss.Style
	MessageStyle   lipgloss.Style
	EmojiStyle     lipgloss.Style
	BadgeStyle     lipgloss.Style

	ActivityFollowStyle       lipgloss.Style
	ActivityDonationStyle     lipgloss.Style
	ActivitySubscriptionStyle lipgloss.Style
	ActivityMessageStyle      lipgloss.Style
)

// Send box styles
var (
	SendBoxStyle        lipgloss.Style
	SendBoxFocusedStyle lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	ItemStyle         lipgloss.Style
	ItemSelectedStyle lipgloss.Style
)

// Status styles
var (
	StatusErrorStyle lipgloss.Style
	StatusOKStyle    lipgloss.Style
)

func init() {
	buildStyles()
	RefreshModalStyles()
}

// buildStyles derives every style from the color variables
func buildStyles() {
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	PanelEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	FollowIndicatorStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	TimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	SourceStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	AuthorStyle = lipgloss.NewStyle().
		Foreground(ColorAuthor).
		Bold(true)

	MessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	// Emoji runs keep their own glyph colors; only the surrounding text is styled
	EmojiStyle = lipgloss.NewStyle()

	BadgeStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorSecondary)

	ActivityFollowStyle = lipgloss.NewStyle().
		Foreground(ColorFollow).
		Bold(true)

	ActivityDonationStyle = lipgloss.NewStyle().
		Foreground(ColorDonation).
		Bold(true)

	ActivitySubscriptionStyle = lipgloss.NewStyle().
		Foreground(ColorSubscription).
		Bold(true)

	ActivityMessageStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	SendBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	SendBoxFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	ItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(currentTheme.GetBgSelected())).
		Foreground(lipgloss.Color(currentTheme.Text)).
		Bold(true).
		Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	StatusOKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
}

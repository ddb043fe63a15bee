package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Style variables, injected by the parent ui package via SetStyles so the
// modals follow the active theme without importing ui.
var (
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ItemStyle         lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	StatusErrorStyle  lipgloss.Style
	StatusOKStyle     lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
	ModalWidthWide      int
)

// Styles bundles everything SetStyles injects.
type Styles struct {
	Title, Help, Item, ItemSelected, StatusError, StatusOK lipgloss.Style

	Primary, Secondary, Text, TextMuted, TextInverse, Warning color.Color

	InputWidth, InputCharLimit, Width, WidthWide int
}

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any modals.
func SetStyles(s Styles) {
	ModalTitleStyle = s.Title
	ModalHelpStyle = s.Help
	ItemStyle = s.Item
	ItemSelectedStyle = s.ItemSelected
	StatusErrorStyle = s.StatusError
	StatusOKStyle = s.StatusOK

	ColorPrimary = s.Primary
	ColorSecondary = s.Secondary
	ColorText = s.Text
	ColorTextMuted = s.TextMuted
	ColorTextInverse = s.TextInverse
	ColorWarning = s.Warning

	ModalInputWidth = s.InputWidth
	ModalInputCharLimit = s.InputCharLimit
	ModalWidth = s.Width
	ModalWidthWide = s.WidthWide
}

package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/streamchat/internal/ui/modals"
)

// ModalState is re-exported so the app only imports ui for the container.
type ModalState = modals.ModalState

// RefreshModalStyles pushes the current theme into the modals package.
func RefreshModalStyles() {
	modals.SetStyles(modals.Styles{
		Title:        ModalTitleStyle,
		Help:         ModalHelpStyle,
		Item:         ItemStyle,
		ItemSelected: ItemSelectedStyle,
		StatusError:  StatusErrorStyle,
		StatusOK:     StatusOKStyle,

		Primary:     ColorPrimary,
		Secondary:   ColorSecondary,
		Text:        ColorText,
		TextMuted:   ColorTextMuted,
		TextInverse: ColorTextInverse,
		Warning:     ColorWarning,

		InputWidth:     ModalInputWidth,
		InputCharLimit: ModalInputCharLimit,
		Width:          ModalWidth,
		WidthWide:      ModalWidthWide,
	})
}

// Modal is the popup container. State is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a hidden modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError shows an error line under the modal content
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update delegates to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// width picks the modal's preferred width, never wider than the screen
func (m *Modal) width(screenWidth int) int {
	w := ModalWidth
	if pw, ok := m.State.(modals.ModalWithPreferredWidth); ok {
		w = pw.PreferredWidth()
	}
	if screenWidth > 0 {
		w = min(w, screenWidth-2)
	}
	return w
}

// View renders the modal centered on screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	w := m.width(screenWidth)
	if sized, ok := m.State.(modals.ModalWithSize); ok {
		sized.SetSize(w, screenHeight-4)
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		ModalStyle.Width(w).Render(content),
	)
}

package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType determines the icon and color of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 3 * time.Second

// flashTickInterval is how often expiry is checked while a flash is shown
const flashTickInterval = 500 * time.Millisecond

// FlashMessage is a transient banner shown in place of the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	Duration  time.Duration
	CreatedAt time.Time
}

// IsExpired reports whether the message has outlived its duration
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) >= m.Duration
}

// FlashTickMsg asks the model to check whether the flash expired
type FlashTickMsg time.Time

// FlashTick schedules the next expiry check
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	flashMessage *FlashMessage
}

// DefaultBindings are shown when no modal is open
func DefaultBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "shift+enter", Desc: "newline"},
		{Key: "tab", Desc: "focus"},
		{Key: "ctrl+a", Desc: "auto-scroll"},
		{Key: "ctrl+f", Desc: "activity"},
		{Key: "ctrl+d", Desc: "dock"},
		{Key: "ctrl+s", Desc: "settings"},
		{Key: "ctrl+k", Desc: "keys"},
		{Key: "?", Desc: "help"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{bindings: DefaultBindings()}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings replaces the displayed keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		Duration:  duration,
		CreatedAt: time.Now(),
	}
}

// ClearFlash removes any flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is shown
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	var parts []string
	used := 0
	for _, b := range f.bindings {
		part := FooterKeyStyle.Render(b.Key) + FooterDescStyle.Render(": "+b.Desc)
		w := ansi.StringWidth(part) + 2
		// Drop trailing bindings rather than wrapping onto a second line
		if f.width > 0 && used+w > f.width-2 {
			break
		}
		parts = append(parts, part)
		used += w
	}

	return FooterStyle.Width(f.width).Render(strings.Join(parts, "  "))
}

func (f *Footer) renderFlash() string {
	var icon string
	fg := ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, fg = "✕", ColorError
	case FlashWarning:
		icon, fg = "⚠", ColorWarning
	case FlashSuccess:
		icon, fg = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}

	text := icon + " " + f.flashMessage.Text
	if f.width > 4 {
		text = ansi.Truncate(text, f.width-2, "…")
	}
	style := lipgloss.NewStyle().Foreground(fg).Bold(true)
	return FooterStyle.Width(f.width).Render(style.Render(text))
}

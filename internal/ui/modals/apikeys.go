package modals

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// APIKeysStatusDuration is how long the save confirmation stays visible.
const APIKeysStatusDuration = 2 * time.Second

// RevealKey toggles visibility of the focused credential.
const RevealKey = "ctrl+r"

// apiKeysStatusExpiredMsg clears the save confirmation. The sequence number
// stops an older tick from clearing a newer message.
type apiKeysStatusExpiredMsg struct {
	seq int
}

var labelWords = map[string]string{
	"ID":      "ID",
	"API":     "API",
	"YOUTUBE": "YouTube",
}

// CredentialLabel turns an environment name like TWITCH_CLIENT_ID into
// "Twitch Client ID".
func CredentialLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if fixed, ok := labelWords[w]; ok {
			words[i] = fixed
			continue
		}
		if w == "" {
			continue
		}
		words[i] = w[:1] + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// APIKeysState edits the stored credentials. Every field starts masked and
// can be revealed individually.
type APIKeysState struct {
	names    []string
	values   []string
	original []string
	inputs   []*huh.Input
	revealed []bool

	status    string
	statusErr bool
	statusSeq int

	form           *huh.Form
	availableWidth int
}

func (*APIKeysState) modalState() {}

func (s *APIKeysState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *APIKeysState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *APIKeysState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *APIKeysState) Title() string { return "API Keys" }

func (s *APIKeysState) Help() string {
	return "Tab: next  ctrl+r: show/hide  Enter: save  Esc: close"
}

func (s *APIKeysState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	parts := []string{title, s.form.View()}
	if s.status != "" {
		style := StatusOKStyle
		if s.statusErr {
			style = StatusErrorStyle
		}
		parts = append(parts, style.Render(s.status))
	}
	parts = append(parts, ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *APIKeysState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	switch msg := msg.(type) {
	case apiKeysStatusExpiredMsg:
		if msg.seq == s.statusSeq {
			s.status = ""
			s.statusErr = false
		}
		return s, nil
	case tea.KeyPressMsg:
		if msg.String() == RevealKey {
			s.ToggleReveal(s.focusedIndex())
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// focusedIndex returns the index of the focused input, or 0.
func (s *APIKeysState) focusedIndex() int {
	focused := s.form.GetFocusedField()
	for i, in := range s.inputs {
		if focused == huh.Field(in) {
			return i
		}
	}
	return 0
}

// ToggleReveal flips the masking of field i.
func (s *APIKeysState) ToggleReveal(i int) {
	if i < 0 || i >= len(s.inputs) {
		return
	}
	s.revealed[i] = !s.revealed[i]
	if s.revealed[i] {
		s.inputs[i].EchoMode(huh.EchoModeNormal)
	} else {
		s.inputs[i].EchoMode(huh.EchoModePassword)
	}
}

// Revealed reports whether field i is shown in the clear.
func (s *APIKeysState) Revealed(i int) bool {
	return i >= 0 && i < len(s.revealed) && s.revealed[i]
}

// Values returns every field, trimmed, keyed by credential name. Cleared
// fields map to "" so the store removes them.
func (s *APIKeysState) Values() map[string]string {
	out := make(map[string]string, len(s.names))
	for i, name := range s.names {
		out[name] = strings.TrimSpace(s.values[i])
	}
	return out
}

// ChangedValues returns only the fields edited since the modal opened, trimmed.
// Untouched fields stay out so values supplied by the environment are never
// copied into the credentials file.
func (s *APIKeysState) ChangedValues() map[string]string {
	out := make(map[string]string)
	for i, name := range s.names {
		if v := strings.TrimSpace(s.values[i]); v != s.original[i] {
			out[name] = v
		}
	}
	return out
}

// Changed reports whether any field differs from what the modal opened with.
func (s *APIKeysState) Changed() bool {
	for i := range s.values {
		if strings.TrimSpace(s.values[i]) != s.original[i] {
			return true
		}
	}
	return false
}

// SetStatus shows a transient message under the form and returns the command
// that clears it.
func (s *APIKeysState) SetStatus(text string, isErr bool) tea.Cmd {
	s.status = text
	s.statusErr = isErr
	s.statusSeq++
	seq := s.statusSeq
	return tea.Tick(APIKeysStatusDuration, func(time.Time) tea.Msg {
		return apiKeysStatusExpiredMsg{seq: seq}
	})
}

// Status returns the current transient message.
func (s *APIKeysState) Status() string {
	return s.status
}

// NewAPIKeysState creates the API keys modal for names, prefilled from current.
func NewAPIKeysState(names []string, current map[string]string) *APIKeysState {
	s := &APIKeysState{
		names:          names,
		values:         make([]string, len(names)),
		original:       make([]string, len(names)),
		inputs:         make([]*huh.Input, len(names)),
		revealed:       make([]bool, len(names)),
		availableWidth: ModalWidthWide,
	}

	fields := make([]huh.Field, len(names))
	for i, name := range names {
		s.values[i] = current[name]
		s.original[i] = strings.TrimSpace(current[name])
		s.inputs[i] = huh.NewInput().
			Title(CredentialLabel(name)).
			Description(name).
			CharLimit(ModalInputCharLimit).
			EchoMode(huh.EchoModePassword).
			Value(&s.values[i])
		fields[i] = s.inputs[i]
	}

	s.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

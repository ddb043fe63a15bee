package ui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/streamchat/internal/keys"
)

// SubmitMsg carries trimmed outgoing text from the send box
type SubmitMsg struct {
	Text string
}

// SendKey submits the message like Enter does
var SendKey = key.NewBinding(key.WithKeys(keys.CtrlO), key.WithHelp("ctrl+o", "send"))

// SendBox is the outgoing chat input. It grows with its content up to a
// maximum line count; the feed area gives up the space.
type SendBox struct {
	input    textarea.Model
	width    int
	maxLines int
	focused  bool
}

// NewSendBox creates an empty send box
func NewSendBox() *SendBox {
	ti := textarea.New()
	ti.Placeholder = "Send a message..."
	ti.CharLimit = SendBoxCharLimit
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Enter submits, so newlines need a modifier
	ti.KeyMap.InsertNewline = key.NewBinding(key.WithKeys(keys.ShiftEnter, keys.CtrlJ))
	ti.SetHeight(SendBoxMinLines)

	return &SendBox{
		input:    ti,
		maxLines: SendBoxMaxLines,
	}
}

// SetSize sets the outer width and the most text lines the box may show
func (s *SendBox) SetSize(width, maxLines int) {
	s.width = width
	s.maxLines = max(SendBoxMinLines, maxLines)
	s.input.SetWidth(max(1, width-SendBoxBorderHeight-InputPaddingWidth))
	s.input.SetHeight(s.Lines())
}

// Focus focuses the input
func (s *SendBox) Focus() tea.Cmd {
	s.focused = true
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SendBox) Blur() {
	s.focused = false
	s.input.Blur()
}

// IsFocused reports whether the box has focus
func (s *SendBox) IsFocused() bool {
	return s.focused
}

// Value returns the raw input text
func (s *SendBox) Value() string {
	return s.input.Value()
}

// SetValue replaces the input text
func (s *SendBox) SetValue(v string) {
	s.input.SetValue(v)
	s.input.SetHeight(s.Lines())
}

// Lines is the number of text rows currently shown. Long lines count once per
// wrapped row.
func (s *SendBox) Lines() int {
	return min(max(s.visualRows(), SendBoxMinLines), s.maxLines)
}

func (s *SendBox) visualRows() int {
	width := s.input.Width()
	if width <= 0 {
		return s.input.LineCount()
	}
	rows := 0
	for _, line := range strings.Split(s.input.Value(), "\n") {
		rows += max(1, (ansi.StringWidth(line)+width-1)/width)
	}
	return rows
}

// Height is the outer height including the border
func (s *SendBox) Height() int {
	return s.Lines() + SendBoxBorderHeight
}

// Submit clears the input and returns a command delivering the trimmed text.
// Whitespace-only input is left alone and nil is returned.
func (s *SendBox) Submit() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return nil
	}
	s.input.Reset()
	s.input.SetHeight(s.Lines())
	return func() tea.Msg {
		return SubmitMsg{Text: text}
	}
}

// Update handles input while focused
func (s *SendBox) Update(msg tea.Msg) (*SendBox, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		if keyMsg.String() == keys.Enter || key.Matches(keyMsg, SendKey) {
			return s, s.Submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.input.SetHeight(s.Lines())
	return s, cmd
}

// View renders the send box
func (s *SendBox) View() string {
	style := SendBoxStyle
	if s.focused {
		style = SendBoxFocusedStyle
	}
	return style.Width(s.width).Render(s.input.View())
}

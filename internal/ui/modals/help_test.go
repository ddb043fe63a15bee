package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func testSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Chat",
			Shortcuts: []HelpShortcut{
				{Key: "enter", Desc: "send message"},
				{Key: "shift+enter", Desc: "new line"},
			},
		},
		{
			Title: "Layout",
			Shortcuts: []HelpShortcut{
				{Key: "ctrl+d", Desc: "cycle dock edge"},
			},
		},
	}
}

func TestNewHelpState_SelectsFirstShortcut(t *testing.T) {
	s := NewHelpState(testSections())

	sc := s.SelectedShortcut()
	if sc == nil || sc.Key != "enter" {
		t.Fatalf("SelectedShortcut() = %+v, want enter", sc)
	}
}

func TestHelpState_Navigation(t *testing.T) {
	s := NewHelpState(testSections())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if sc := s.SelectedShortcut(); sc == nil || sc.Key != "shift+enter" {
		t.Errorf("after down, selected %+v", sc)
	}

	// The next row is a section header
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if sc := s.SelectedShortcut(); sc != nil {
		t.Errorf("header row should have no shortcut, got %+v", sc)
	}
}

func TestHelpState_Render(t *testing.T) {
	s := NewHelpState(testSections())
	s.SetSize(60, 20)

	out := ansi.Strip(s.Render())
	for _, want := range []string{"Keyboard Shortcuts", "Chat", "send message", "Layout", "cycle dock edge"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if s.IsFiltering() {
		t.Error("should not start filtering")
	}
}

package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHeader_View(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(h *Header)
		want    []string
		notWant []string
	}{
		{
			name:    "initial",
			setup:   func(h *Header) {},
			want:    []string{"streamchat", "badges: loading"},
			notWant: []string{"[mock]", "#"},
		},
		{
			name: "channel and ready badges",
			setup: func(h *Header) {
				h.SetChannel("streamer")
				h.SetBadgeStatus(BadgesReady, 12)
			},
			want: []string{"#streamer", "badges: 12"},
		},
		{
			name: "mock with failed badges",
			setup: func(h *Header) {
				h.SetMock(true)
				h.SetBadgeStatus(BadgesFailed, 0)
			},
			want: []string{"[mock]", "badges: unavailable"},
		},
		{
			name:  "skipped",
			setup: func(h *Header) { h.SetBadgeStatus(BadgesSkipped, 0) },
			want:  []string{"badges: off"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader()
			h.SetWidth(80)
			tt.setup(h)
			view := ansi.Strip(h.View())

			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("header %q missing %q", view, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(view, w) {
					t.Errorf("header %q should not contain %q", view, w)
				}
			}
		})
	}
}

func TestHeader_FillsWidth(t *testing.T) {
	h := NewHeader()
	h.SetWidth(100)
	h.SetChannel("streamer")

	if w := ansi.StringWidth(h.View()); w != 100 {
		t.Errorf("header width = %d, want 100", w)
	}
}

func TestHeader_NarrowDoesNotPanic(t *testing.T) {
	h := NewHeader()
	h.SetWidth(5)
	h.SetChannel("a-very-long-channel-name")
	if h.View() == "" {
		t.Error("narrow header should still render")
	}
}

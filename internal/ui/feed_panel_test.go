package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/scroll"
)

func chatMessages(n int) []feed.ChatMessage {
	base := time.Date(2026, 3, 1, 15, 4, 5, 0, time.Local)
	msgs := make([]feed.ChatMessage, n)
	for i := range msgs {
		msgs[i] = feed.NewChatMessage(fmt.Sprintf("m%d", i), "viewer", feed.SourceTwitch,
			fmt.Sprintf("line %d", i), base.Add(time.Duration(i)*time.Second))
	}
	return msgs
}

func newSizedChatPanel() *FeedPanel[feed.ChatMessage] {
	p := NewChatPanel()
	// 5 visible lines: 8 rows minus border and title
	p.SetSize(40, 8)
	return p
}

func pageUp(p *FeedPanel[feed.ChatMessage]) {
	p.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
}

func TestFeedPanel_EmptyState(t *testing.T) {
	p := newSizedChatPanel()
	view := ansi.Strip(p.View())
	if !strings.Contains(view, "Waiting for chat messages") {
		t.Errorf("empty view = %q", view)
	}
	if !strings.Contains(view, "Chat") {
		t.Error("title missing")
	}
}

func TestFeedPanel_FollowsTail(t *testing.T) {
	p := newSizedChatPanel()
	msgs := chatMessages(20)

	p.SetEntries(msgs)
	g := p.Geometry()
	if g.Offset != g.MaxOffset() {
		t.Fatalf("offset = %d, want tail %d", g.Offset, g.MaxOffset())
	}
	if p.Mode() != scroll.Following {
		t.Errorf("mode = %v, want following", p.Mode())
	}

	// Appending keeps the newest entry in view
	p.SetEntries(append(msgs, chatMessages(25)[20:]...))
	g = p.Geometry()
	if g.Offset != g.MaxOffset() {
		t.Errorf("offset = %d after append, want %d", g.Offset, g.MaxOffset())
	}
	if !strings.Contains(ansi.Strip(p.View()), "line 24") {
		t.Error("newest entry not visible")
	}
}

func TestFeedPanel_ReadingHoldsPosition(t *testing.T) {
	p := newSizedChatPanel()
	all := chatMessages(30)
	p.SetEntries(all[:20])

	pageUp(p)
	if p.Mode() != scroll.Reading {
		t.Fatalf("mode = %v after page up, want reading", p.Mode())
	}
	before := p.Geometry().Offset

	p.SetEntries(all[:23])
	if got := p.Geometry().Offset; got != before {
		t.Errorf("offset moved from %d to %d while reading", before, got)
	}
	if p.Unseen() != 3 {
		t.Errorf("Unseen() = %d, want 3", p.Unseen())
	}
	if !strings.Contains(ansi.Strip(p.View()), "↓ 3 new") {
		t.Error("unseen indicator missing")
	}

	// Scrolling back to the tail resumes following
	p.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	p.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	if p.Mode() != scroll.Following {
		t.Errorf("mode = %v at tail, want following", p.Mode())
	}
	if p.Unseen() != 0 {
		t.Errorf("Unseen() = %d at tail", p.Unseen())
	}

	p.SetEntries(all)
	g := p.Geometry()
	if g.Offset != g.MaxOffset() {
		t.Errorf("should follow again, offset %d of %d", g.Offset, g.MaxOffset())
	}
}

func TestFeedPanel_JumpToTail(t *testing.T) {
	p := newSizedChatPanel()
	p.SetEntries(chatMessages(20))
	pageUp(p)

	p.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	if p.Mode() != scroll.Following {
		t.Errorf("mode = %v after end, want following", p.Mode())
	}
	g := p.Geometry()
	if g.Offset != g.MaxOffset() {
		t.Errorf("offset = %d, want %d", g.Offset, g.MaxOffset())
	}
}

func TestFeedPanel_AutoScrollOff(t *testing.T) {
	p := newSizedChatPanel()
	all := chatMessages(30)
	p.SetEntries(all[:20])

	p.SetAutoScroll(false)
	before := p.Geometry().Offset
	p.SetEntries(all)
	if got := p.Geometry().Offset; got != before {
		t.Errorf("offset moved from %d to %d with auto-scroll off", before, got)
	}
	if !strings.Contains(ansi.Strip(p.View()), "new") {
		t.Error("unseen indicator should show while paused")
	}

	p.SetAutoScroll(true)
	g := p.Geometry()
	if g.Offset != g.MaxOffset() || p.Unseen() != 0 {
		t.Errorf("re-enabling should jump to tail: %+v unseen=%d", g, p.Unseen())
	}
}

func TestFeedPanel_MouseWheel(t *testing.T) {
	p := newSizedChatPanel()
	p.SetEntries(chatMessages(40))

	p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if p.Mode() != scroll.Reading {
		t.Errorf("mode = %v after wheel up, want reading", p.Mode())
	}
}

func TestFeedPanel_ArrivalOrder(t *testing.T) {
	p := NewChatPanel()
	p.SetSize(60, 30)

	// Timestamps deliberately out of order; rows follow arrival
	now := time.Now()
	msgs := []feed.ChatMessage{
		feed.NewChatMessage("a", "first", feed.SourceTwitch, "one", now),
		feed.NewChatMessage("b", "second", feed.SourceTwitch, "two", now.Add(-time.Hour)),
		feed.NewChatMessage("c", "third", feed.SourceYouTube, "three", now.Add(-2*time.Hour)),
	}
	p.SetEntries(msgs)

	view := ansi.Strip(p.View())
	i1, i2, i3 := strings.Index(view, "first"), strings.Index(view, "second"), strings.Index(view, "third")
	if i1 < 0 || !(i1 < i2 && i2 < i3) {
		t.Errorf("rows not in arrival order: %d %d %d", i1, i2, i3)
	}
}

func TestFeedPanel_ResizeKeepsTail(t *testing.T) {
	p := newSizedChatPanel()
	p.SetEntries(chatMessages(20))

	p.SetSize(30, 12)
	g := p.Geometry()
	if g.Offset != g.MaxOffset() {
		t.Errorf("offset = %d after resize, want %d", g.Offset, g.MaxOffset())
	}
}

func TestFeedPanel_Reset(t *testing.T) {
	p := newSizedChatPanel()
	p.SetEntries(chatMessages(20))
	pageUp(p)

	p.Reset()
	if p.Len() != 0 || p.Mode() != scroll.Following || p.Unseen() != 0 {
		t.Errorf("Reset left len=%d mode=%v unseen=%d", p.Len(), p.Mode(), p.Unseen())
	}
}

func TestActivityPanel_Rows(t *testing.T) {
	p := NewActivityPanel()
	p.SetSize(60, 20)

	ts := time.Now()
	follow, _ := feed.NewActivity("alice", feed.SourceTwitch, ts, feed.Follow{})
	dono, _ := feed.NewActivity("bob", feed.SourceTwitch, ts, feed.Donation{Amount: 5.1, Message: "great stream"})
	sub, _ := feed.NewActivity("carol", feed.SourceYouTube, ts, feed.Subscription{Tier: "2", Gift: true})
	p.SetEntries([]feed.Activity{follow, dono, sub})

	view := ansi.Strip(p.View())
	for _, want := range []string{"alice followed!", "bob donated $5.10!", "great stream", "carol subscribed! (Tier 2, gift)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

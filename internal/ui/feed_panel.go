package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/keys"
	"github.com/zhubert/streamchat/internal/scroll"
)

// RowRenderer renders one entry to a block of lines at most width cells wide
type RowRenderer[T feed.Entry] func(entry T, width int) string

// FeedPanel is a bordered, scrollable list of feed entries. It keeps the
// newest entry in view while its tracker is Following and holds position,
// counting unseen entries, while the user reads back.
type FeedPanel[T feed.Entry] struct {
	title   string
	empty   string
	render  RowRenderer[T]
	width   int
	height  int
	focused bool

	// autoScroll is the global toggle; off means new entries never move the view
	autoScroll bool

	viewport viewport.Model
	tracker  *scroll.Tracker
	entries  []T
	unseen   int
}

// NewFeedPanel creates an empty panel
func NewFeedPanel[T feed.Entry](title, empty string, render RowRenderer[T]) *FeedPanel[T] {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &FeedPanel[T]{
		title:      title,
		empty:      empty,
		render:     render,
		autoScroll: true,
		viewport:   vp,
		tracker:    scroll.New(),
	}
}

// NewChatPanel creates the chat feed panel
func NewChatPanel() *FeedPanel[feed.ChatMessage] {
	return NewFeedPanel("Chat", "Waiting for chat messages...", RenderChatRow)
}

// NewActivityPanel creates the activity feed panel
func NewActivityPanel() *FeedPanel[feed.Activity] {
	return NewFeedPanel("Activity", "No follows, subs or donations yet", RenderActivityRow)
}

// SetSize sets the outer panel dimensions, border included
func (p *FeedPanel[T]) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width = width
	p.height = height

	ctx := GetViewContext()
	p.viewport.SetWidth(ctx.InnerWidth(width))
	p.viewport.SetHeight(max(1, ctx.InnerHeight(height)-PanelTitleHeight))

	// Rewrapping changes the line count, so re-pin the tail if we were on it
	p.refresh()
	if p.tracker.Following() {
		p.revealTail()
	}
}

// SetFocused sets whether the panel receives scroll keys
func (p *FeedPanel[T]) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused reports whether the panel has focus
func (p *FeedPanel[T]) IsFocused() bool {
	return p.focused
}

// SetAutoScroll sets the global auto-scroll toggle. Turning it on jumps to the
// newest entry.
func (p *FeedPanel[T]) SetAutoScroll(on bool) {
	p.autoScroll = on
	if on {
		p.JumpToTail()
	}
}

// AutoScroll reports the global auto-scroll toggle
func (p *FeedPanel[T]) AutoScroll() bool {
	return p.autoScroll
}

// Mode returns the tracker's current intent
func (p *FeedPanel[T]) Mode() scroll.Mode {
	return p.tracker.Mode()
}

// Unseen is the number of entries appended while the tail was out of view
func (p *FeedPanel[T]) Unseen() int {
	return p.unseen
}

// Len returns the number of entries shown
func (p *FeedPanel[T]) Len() int {
	return len(p.entries)
}

// Geometry returns the viewport's current scroll geometry
func (p *FeedPanel[T]) Geometry() scroll.Geometry {
	return scroll.Geometry{
		Offset:         p.viewport.YOffset(),
		ContentHeight:  p.viewport.TotalLineCount(),
		ViewportHeight: p.viewport.Height(),
	}
}

// SetEntries replaces the displayed snapshot. The slice is treated as
// read-only. When it grew, the tracker decides whether to reveal the tail.
func (p *FeedPanel[T]) SetEntries(entries []T) {
	added := len(entries) - len(p.entries)
	p.entries = entries
	p.refresh()
	if added <= 0 {
		return
	}

	if p.tracker.ContentChanged(p.Geometry()) && p.autoScroll {
		p.revealTail()
		return
	}
	if !p.tracker.NearTail(p.Geometry()) {
		p.unseen += added
	}
}

// JumpToTail scrolls to the newest entry and resumes following
func (p *FeedPanel[T]) JumpToTail() {
	p.tracker.Follow()
	p.revealTail()
}

// Reset drops all entries and scroll state, as if the panel were recreated
func (p *FeedPanel[T]) Reset() {
	p.entries = nil
	p.unseen = 0
	p.tracker.Reset()
	p.refresh()
}

func (p *FeedPanel[T]) revealTail() {
	p.tracker.Programmatic(func() {
		p.viewport.GotoBottom()
		// A programmatic move still reports a geometry; the guard drops it
		p.tracker.Observe(p.Geometry())
	})
	p.unseen = 0
}

// refresh re-renders every row at the current width
func (p *FeedPanel[T]) refresh() {
	if len(p.entries) == 0 {
		p.viewport.SetContent(PanelEmptyStyle.Render(p.empty))
		return
	}

	width := p.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	rows := make([]string, len(p.entries))
	for i, e := range p.entries {
		rows[i] = p.render(e, width)
	}
	p.viewport.SetContent(strings.Join(rows, "\n"))
}

// isScrollKey reports whether key moves the feed rather than editing input
func isScrollKey(key string) bool {
	switch key {
	case keys.PgUp, keys.PgDown, keys.CtrlUp, keys.CtrlDown, keys.Home, keys.End:
		return true
	}
	return false
}

// Update handles user scrolling. Every user-initiated move is reported to the
// tracker so it can switch between Following and Reading.
func (p *FeedPanel[T]) Update(msg tea.Msg) (*FeedPanel[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.End:
			p.JumpToTail()
			return p, nil
		case keys.Home:
			p.viewport.GotoTop()
		case keys.CtrlUp:
			p.viewport.ScrollUp(1)
		case keys.CtrlDown:
			p.viewport.ScrollDown(1)
		case keys.PgUp:
			p.viewport.PageUp()
		case keys.PgDown:
			p.viewport.PageDown()
		default:
			if !p.focused {
				return p, nil
			}
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			p.observe()
			return p, cmd
		}
		p.observe()
		return p, nil

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		p.observe()
		return p, cmd
	}
	return p, nil
}

func (p *FeedPanel[T]) observe() {
	p.tracker.Observe(p.Geometry())
	if p.tracker.Following() {
		p.unseen = 0
	}
}

// View renders the panel
func (p *FeedPanel[T]) View() string {
	style := PanelStyle
	if p.focused {
		style = PanelFocusedStyle
	}

	title := PanelTitleStyle.Render(p.title)
	if indicator := p.indicator(); indicator != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, FollowIndicatorStyle.Render(indicator))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, p.viewport.View())
	return style.Width(p.width).Height(p.height).Render(body)
}

// indicator describes the follow state when the tail is out of view
func (p *FeedPanel[T]) indicator() string {
	switch {
	case p.unseen > 0:
		return fmt.Sprintf("↓ %d new", p.unseen)
	case !p.autoScroll:
		return "paused"
	case p.tracker.Mode() == scroll.Reading:
		return "reading"
	}
	return ""
}

package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/streamchat/internal/layout"
	"github.com/zhubert/streamchat/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for tests.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	ctx := ui.GetViewContext()
	feeds := layout.Compose(
		func(w, h int) string { return m.chat.View() },
		func(w, h int) string { return m.activity.View() },
		m.shownLayout(),
		ctx.TerminalWidth, ctx.FeedHeight,
	)

	frame := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		feeds,
		m.sendBox.View(),
		m.footer.View(),
	)
	return layout.Clip(frame, m.width, m.height)
}

// shownLayout is the layout as drawn at the current size. A dock too thin to
// hold a bordered panel is hidden until the terminal grows.
func (m *Model) shownLayout() layout.Config {
	ctx := ui.GetViewContext()
	return m.layout.Constrain(ctx.TerminalWidth, ctx.FeedHeight, layout.MinSize{
		Width:  ui.MinPanelWidth,
		Height: ui.MinPanelHeight,
	})
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() tea.Cmd {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sendBox.SetSize(ctx.TerminalWidth, ctx.MaxSendBoxLines())
	ctx.SetSendBoxLines(m.sendBox.Lines())
	return m.resizePanels()
}

// panelRects returns the chat and activity rectangles inside the feed area.
// A hidden activity feed gets a zero rectangle.
func (m *Model) panelRects() (chat, activity rect) {
	ctx := ui.GetViewContext()
	area := rect{x: 0, y: ctx.HeaderHeight, w: ctx.TerminalWidth, h: ctx.FeedHeight}

	a := layout.Split(m.shownLayout())
	if a.Secondary == 0 {
		return area, rect{}
	}

	if a.Axis == layout.Horizontal {
		pw, sw := a.Cells(area.w)
		chat = rect{x: area.x, y: area.y, w: pw, h: area.h}
		activity = rect{x: area.x + pw, y: area.y, w: sw, h: area.h}
		if a.SecondaryFirst {
			activity.x = area.x
			chat.x = area.x + sw
		}
		return chat, activity
	}

	ph, sh := a.Cells(area.h)
	chat = rect{x: area.x, y: area.y, w: area.w, h: ph}
	activity = rect{x: area.x, y: area.y + ph, w: area.w, h: sh}
	if a.SecondaryFirst {
		activity.y = area.y
		chat.y = area.y + sh
	}
	return chat, activity
}

// resizePanels fits both feeds into their share of the feed area. Focus
// leaves the activity feed when it is no longer drawn.
func (m *Model) resizePanels() tea.Cmd {
	chat, activity := m.panelRects()
	m.chat.SetSize(chat.w, chat.h)
	if activity.w > 0 && activity.h > 0 {
		m.activity.SetSize(activity.w, activity.h)
	}
	if m.focus == FocusActivity && !m.shownLayout().Visible() {
		return m.setFocus(FocusSendBox)
	}
	return nil
}

// panelAt reports which feed contains the screen cell x, y. Anything outside
// the feeds reports FocusSendBox.
func (m *Model) panelAt(x, y int) Focus {
	chat, activity := m.panelRects()
	switch {
	case chat.contains(x, y):
		return FocusChat
	case activity.contains(x, y):
		return FocusActivity
	}
	return FocusSendBox
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/streamchat/internal/bridge"
	"github.com/zhubert/streamchat/internal/config"
	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/layout"
	"github.com/zhubert/streamchat/internal/logger"
	"github.com/zhubert/streamchat/internal/ui"
)

// Focus represents which component receives keys that are not shortcuts
type Focus int

const (
	FocusSendBox Focus = iota
	FocusChat
	FocusActivity
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusSendBox:
		return "SendBox"
	case FocusChat:
		return "Chat"
	case FocusActivity:
		return "Activity"
	default:
		return "Unknown"
	}
}

// Options configures a Model.
type Options struct {
	Config  *config.Config
	Bridge  bridge.Bridge
	Version string

	// Channel is shown in the header.
	Channel string
	// Mock starts the random activity generator alongside chat.
	Mock bool
}

// Model is the main Bubble Tea model. It is the single owner of the chat and
// activity logs; bridge goroutines only reach it through messages.
type Model struct {
	config  *config.Config
	bridge  bridge.Bridge
	sub     *bridge.Subscription
	version string
	mock    bool

	// ctx scopes every bridge call and is cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc

	header   *ui.Header
	footer   *ui.Footer
	chat     *ui.FeedPanel[feed.ChatMessage]
	activity *ui.FeedPanel[feed.Activity]
	sendBox  *ui.SendBox
	modal    *ui.Modal

	chatLog     *feed.Log[feed.ChatMessage]
	activityLog *feed.Log[feed.Activity]

	layout     layout.Config
	autoScroll bool

	width  int
	height int
	focus  Focus
}

// BridgeEventMsg carries one inbound bridge event into the update loop
type BridgeEventMsg struct {
	Event bridge.Event
}

// subscriptionClosedMsg is sent once the event subscription is released
type subscriptionClosedMsg struct{}

// sendResultMsg reports the outcome of an outbound chat message
type sendResultMsg struct {
	Err error
}

// listenerStartedMsg reports the outcome of starting a bridge listener
type listenerStartedMsg struct {
	Name string
	Err  error
}

// badgeInitMsg reports badge initialization that never reached the bridge
type badgeInitMsg struct {
	Skipped bool
	Err     error
}

// credentialsLoadedMsg carries credentials read for the API keys modal
type credentialsLoadedMsg struct {
	Values bridge.Credentials
	Err    error
}

// credentialsSavedMsg reports the outcome of saving the API keys modal
type credentialsSavedMsg struct {
	Err error
}

// New creates a new app model and subscribes to every bridge event. The
// subscription is released by Close.
func New(opts Options) *Model {
	cfg := opts.Config
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		config:      cfg,
		bridge:      opts.Bridge,
		sub:         opts.Bridge.Subscribe(bridge.AllKinds...),
		version:     opts.Version,
		mock:        opts.Mock,
		ctx:         ctx,
		cancel:      cancel,
		header:      ui.NewHeader(),
		footer:      ui.NewFooter(),
		chat:        ui.NewChatPanel(),
		activity:    ui.NewActivityPanel(),
		sendBox:     ui.NewSendBox(),
		modal:       ui.NewModal(),
		chatLog:     feed.NewLog[feed.ChatMessage](),
		activityLog: feed.NewLog[feed.Activity](),
		layout:      cfg.GetLayout(),
		focus:       FocusSendBox,
	}

	m.header.SetChannel(opts.Channel)
	m.header.SetMock(opts.Mock)
	m.setAutoScroll(cfg.GetAutoScroll())
	m.setFocus(FocusSendBox)

	return m
}

// Init starts listening for bridge events and kicks off the listeners and
// badge initialization.
func (m *Model) Init() tea.Cmd {
	logger.WithComponent("app").Info("starting", "version", m.version, "mock", m.mock)
	cmds := []tea.Cmd{
		m.listenForEvents(),
		m.startListener("chat", m.bridge.StartChatListener),
		m.initBadges(),
		m.sendBox.Focus(),
	}
	if m.mock {
		cmds = append(cmds, m.startListener("mock events", m.bridge.StartMockEvents))
	}
	return tea.Batch(cmds...)
}

// Close releases the event subscription and cancels outstanding bridge calls.
func (m *Model) Close() {
	m.sub.Close()
	m.cancel()
	logger.WithComponent("app").Debug("model closed",
		"chat", m.chatLog.Len(),
		"activities", m.activityLog.Len(),
	)
}

// setFocus moves keyboard focus and updates the panel borders to match
func (m *Model) setFocus(f Focus) tea.Cmd {
	if f == FocusActivity && !m.shownLayout().Visible() {
		f = FocusSendBox
	}
	if f != m.focus {
		logger.WithComponent("app").Debug("focus changed", "from", m.focus, "to", f)
	}
	m.focus = f
	m.chat.SetFocused(f == FocusChat)
	m.activity.SetFocused(f == FocusActivity)
	if f == FocusSendBox {
		return m.sendBox.Focus()
	}
	m.sendBox.Blur()
	return nil
}

// cycleFocus moves focus forward or back through the visible components
func (m *Model) cycleFocus(step int) tea.Cmd {
	order := []Focus{FocusSendBox, FocusChat}
	if m.shownLayout().Visible() {
		order = append(order, FocusActivity)
	}
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	next := (idx + step + len(order)) % len(order)
	return m.setFocus(order[next])
}

// setAutoScroll applies the global auto-scroll toggle to both feeds
func (m *Model) setAutoScroll(on bool) {
	m.autoScroll = on
	m.chat.SetAutoScroll(on)
	m.activity.SetAutoScroll(on)
}

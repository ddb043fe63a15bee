package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/streamchat/internal/bridge"
	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/keys"
	"github.com/zhubert/streamchat/internal/logger"
	"github.com/zhubert/streamchat/internal/notification"
	"github.com/zhubert/streamchat/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.updateSizes()

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case BridgeEventMsg:
		cmd := m.handleEvent(msg.Event)
		return m, tea.Batch(cmd, m.listenForEvents())

	case subscriptionClosedMsg:
		log.Debug("event subscription closed")
		return m, nil

	case ui.SubmitMsg:
		log.Debug("sending chat message", "length", len(msg.Text))
		return m, m.sendChat(msg.Text)

	case sendResultMsg:
		if msg.Err != nil {
			log.Warn("failed to send chat message", "error", msg.Err)
		}
		return m, nil

	case listenerStartedMsg:
		if msg.Err != nil {
			log.Error("failed to start listener", "listener", msg.Name, "error", msg.Err)
			return m, m.ShowFlashWarning("Could not start " + msg.Name)
		}
		log.Info("listener started", "listener", msg.Name)
		return m, nil

	case badgeInitMsg:
		return m.handleBadgeInit(msg)

	case credentialsLoadedMsg:
		return m.handleCredentialsLoaded(msg)

	case credentialsSavedMsg:
		return m.handleCredentialsSaved(msg)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil
	}

	// Anything else belongs to the modal (timers, blink) or the send box
	if m.modal.IsVisible() {
		return m.forwardToModal(msg)
	}
	return m.updateSendBox(msg)
}

// handleKeyPress routes a key to the modal, a shortcut, or the focused component
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if result, cmd, ok := m.ExecuteShortcut(key); ok {
		return result, cmd
	}

	switch m.focus {
	case FocusChat:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	case FocusActivity:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd
	}

	// The chat feed scrolls while the send box keeps focus
	switch key {
	case keys.PgUp, keys.PgDown, keys.CtrlUp, keys.CtrlDown:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	return m.updateSendBox(msg)
}

// updateSendBox forwards msg to the send box and gives the feeds back any
// rows the box no longer needs.
func (m *Model) updateSendBox(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.sendBox, cmd = m.sendBox.Update(msg)
	if ui.GetViewContext().SetSendBoxLines(m.sendBox.Lines()) {
		cmd = tea.Batch(cmd, m.resizePanels())
	}
	return m, cmd
}

// handleMouseWheel scrolls whichever feed is under the pointer
func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.panelAt(msg.X, msg.Y) {
	case FocusChat:
		m.chat, cmd = m.chat.Update(msg)
	case FocusActivity:
		m.activity, cmd = m.activity.Update(msg)
	}
	return m, cmd
}

// handleEvent appends an inbound event to its log and refreshes the panel
// that shows it.
func (m *Model) handleEvent(ev bridge.Event) tea.Cmd {
	log := logger.WithComponent("app")

	switch e := ev.(type) {
	case bridge.ChatMessageEvent:
		msg := bridge.ToChatMessage(e)
		if err := m.chatLog.Append(msg); err != nil {
			log.Debug("dropped chat message", "id", msg.ID, "error", err)
			return nil
		}
		m.chat.SetEntries(m.chatLog.Snapshot())
		return nil

	case bridge.BadgesReadyEvent:
		if e.Err != nil {
			log.Warn("badge initialization failed", "error", e.Err)
			m.header.SetBadgeStatus(ui.BadgesFailed, 0)
			return nil
		}
		m.header.SetBadgeStatus(ui.BadgesReady, e.Count)
		return nil
	}

	a, ok, err := bridge.ToActivity(ev)
	if !ok {
		log.Debug("ignoring event", "kind", ev.Kind())
		return nil
	}
	if err != nil {
		log.Warn("dropped invalid activity", "kind", ev.Kind(), "error", err)
		return nil
	}
	if err := m.activityLog.Append(a); err != nil {
		log.Debug("dropped activity", "id", a.ID, "error", err)
		return nil
	}
	m.activity.SetEntries(m.activityLog.Snapshot())

	if m.config.GetNotificationsEnabled() && notification.Notable(a) {
		return notifyActivity(a)
	}
	return nil
}

// handleBadgeInit reports badge initialization that ended before the bridge
// could publish a BadgesReadyEvent.
func (m *Model) handleBadgeInit(msg badgeInitMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	if msg.Skipped {
		log.Warn("badge credentials missing, skipping badge initialization", "error", msg.Err)
		m.header.SetBadgeStatus(ui.BadgesSkipped, 0)
		return m, nil
	}
	if msg.Err != nil {
		log.Warn("failed to read credentials for badges", "error", msg.Err)
		m.header.SetBadgeStatus(ui.BadgesFailed, 0)
		if pErrors.Is(msg.Err, pErrors.KindCredentials) {
			return m, m.ShowFlashError("Could not read API keys")
		}
	}
	return m, nil
}

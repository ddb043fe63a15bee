package app

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/streamchat/internal/config"
	"github.com/zhubert/streamchat/internal/keys"
	"github.com/zhubert/streamchat/internal/layout"
	"github.com/zhubert/streamchat/internal/logger"
	"github.com/zhubert/streamchat/internal/ui"
	"github.com/zhubert/streamchat/internal/ui/modals"
)

// handleModalKey routes modal key events to the handler for the visible modal.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.APIKeysState:
		return m.handleAPIKeysModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}
	return m.forwardToModal(msg)
}

// forwardToModal hands a message to the modal for text input and navigation
func (m *Model) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// showSettingsModal opens the settings modal with the current values
func (m *Model) showSettingsModal() {
	names := ui.ThemeNames()
	themes := make([]string, len(names))
	displayNames := make([]string, len(names))
	for i, n := range names {
		themes[i] = string(n)
		displayNames[i] = ui.GetTheme(n).Name
	}

	m.modal.Show(modals.NewSettingsState(themes, displayNames, modals.SettingsValues{
		Theme:            string(ui.CurrentThemeName()),
		DockEdge:         m.layout.Edge,
		DockSize:         m.layout.Size,
		DockRange:        m.config.GetDockRange(),
		ShowActivityFeed: m.layout.ShowSecondary,
		AutoScroll:       m.autoScroll,
		Notifications:    m.config.GetNotificationsEnabled(),
		TwitchChannel:    m.config.GetTwitchChannel(),
	}))
}

// handleSettingsModal handles key events for the Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		values, err := state.Values()
		if err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		m.modal.Hide()
		return m, m.applySettings(values, state.ThemeChanged())
	}
	return m.forwardToModal(msg)
}

// applySettings stores the settings modal's values and reflows the layout
func (m *Model) applySettings(v modals.SettingsValues, themeChanged bool) tea.Cmd {
	log := logger.WithComponent("app")

	if themeChanged {
		ui.SetThemeByName(v.Theme)
		m.config.SetTheme(v.Theme)
		// Rows carry rendered styles, so redraw them in the new palette
		m.chat.SetEntries(m.chatLog.Snapshot())
		m.activity.SetEntries(m.activityLog.Snapshot())
	}

	m.layout = layout.Config{
		Edge:          v.DockEdge,
		Size:          v.DockRange.Clamp(v.DockSize),
		ShowSecondary: v.ShowActivityFeed,
	}
	m.config.SetLayout(m.layout)

	cmds := []tea.Cmd{m.resizePanels()}

	m.setAutoScroll(v.AutoScroll)
	m.config.SetAutoScroll(v.AutoScroll)
	m.config.SetNotificationsEnabled(v.Notifications)

	if v.TwitchChannel != m.config.GetTwitchChannel() {
		m.config.SetTwitchChannel(v.TwitchChannel)
		cmds = append(cmds, m.ShowFlashInfo("Channel change takes effect on restart"))
	} else {
		cmds = append(cmds, m.ShowFlashSuccess("Settings saved"))
	}

	log.Info("settings applied",
		"theme", v.Theme,
		"edge", v.DockEdge,
		"size", m.layout.Size,
		"activityFeed", v.ShowActivityFeed,
		"autoScroll", v.AutoScroll,
		"notifications", v.Notifications,
	)
	cmds = append(cmds, m.saveConfigOrFlash())
	return tea.Batch(cmds...)
}

// showAPIKeysModal opens the API keys modal prefilled with stored values
func (m *Model) showAPIKeysModal(values map[string]string) {
	m.modal.Show(modals.NewAPIKeysState(config.APIKeyNames, values))
}

// handleAPIKeysModal handles key events for the API keys modal. Enter saves
// and keeps the modal open so the confirmation is visible.
func (m *Model) handleAPIKeysModal(key string, msg tea.KeyPressMsg, state *modals.APIKeysState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if !state.Changed() {
			return m, state.SetStatus("No changes to save", false)
		}
		return m, m.saveCredentials(state.ChangedValues())
	}
	return m.forwardToModal(msg)
}

// handleHelpModal handles key events for the help modal. Enter runs the
// highlighted shortcut.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	if state.IsFiltering() {
		return m.forwardToModal(msg)
	}
	switch key {
	case keys.Escape, helpKey:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		sc := state.SelectedShortcut()
		if sc == nil {
			return m, nil
		}
		shortcutKey, ok := shortcutForDisplayKey(sc.Key)
		if !ok {
			return m, nil
		}
		m.modal.Hide()
		result, cmd, _ := m.ExecuteShortcut(shortcutKey)
		return result, cmd
	}
	return m.forwardToModal(msg)
}

// handleCredentialsLoaded opens the API keys modal once credentials are read
func (m *Model) handleCredentialsLoaded(msg credentialsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.WithComponent("app").Warn("failed to read credentials", "error", msg.Err)
		return m, m.ShowFlashError("Could not read API keys")
	}
	current := make(map[string]string, len(msg.Values))
	for name, v := range msg.Values {
		if slices.Contains(config.APIKeyNames, name) {
			current[name] = v
		}
	}
	m.showAPIKeysModal(current)
	return m, nil
}

// handleCredentialsSaved reports a save in the modal, or as a flash on failure
func (m *Model) handleCredentialsSaved(msg credentialsSavedMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	if msg.Err != nil {
		log.Error("failed to save credentials", "error", msg.Err)
		return m, m.ShowFlashError("Failed to save API keys")
	}
	log.Info("credentials saved")

	state, ok := m.modal.State.(*modals.APIKeysState)
	if !ok {
		return m, m.ShowFlashSuccess("API keys saved")
	}
	// Reopen against the saved values so Changed resets
	saved := state.Values()
	for name, v := range saved {
		if strings.TrimSpace(v) == "" {
			delete(saved, name)
		}
	}
	next := modals.NewAPIKeysState(config.APIKeyNames, saved)
	m.modal.Show(next)
	return m, next.SetStatus("API keys saved. Restart to reconnect.", false)
}

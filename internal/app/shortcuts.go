package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/streamchat/internal/keys"
	"github.com/zhubert/streamchat/internal/layout"
	"github.com/zhubert/streamchat/internal/logger"
	"github.com/zhubert/streamchat/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string                              // The key binding (e.g., "ctrl+a")
	DisplayKey  string                              // Display name in help; defaults to Key
	Description string                              // Human-readable description
	Category    string                              // Section for help modal grouping
	Handler     func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition   func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryLayout        = "Layout"
	CategoryConfiguration = "Configuration"
	CategoryChat          = "Sending messages"
	CategoryGeneral       = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryLayout,
	CategoryConfiguration,
	CategoryChat,
	CategoryGeneral,
}

// helpKey opens the help modal. It is handled outside the registry because
// the help handler reads the registry.
const helpKey = "?"

// ShortcutRegistry is the central registry of executable shortcuts. Entries
// appear in the help modal and run from both key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Move focus to the next panel",
		Category:    CategoryNavigation,
		Handler:     shortcutFocusNext,
	},
	{
		Key:         keys.ShiftTab,
		DisplayKey:  "Shift+Tab",
		Description: "Move focus to the previous panel",
		Category:    CategoryNavigation,
		Handler:     shortcutFocusPrev,
	},

	// Layout
	{
		Key:         keys.CtrlA,
		Description: "Toggle auto-scroll",
		Category:    CategoryLayout,
		Handler:     shortcutToggleAutoScroll,
	},
	{
		Key:         keys.CtrlF,
		Description: "Show or hide the activity feed",
		Category:    CategoryLayout,
		Handler:     shortcutToggleActivityFeed,
	},
	{
		Key:         keys.CtrlD,
		Description: "Dock the activity feed on the next edge",
		Category:    CategoryLayout,
		Handler:     shortcutCycleDockEdge,
		Condition:   func(m *Model) bool { return m.layout.Visible() },
	},

	// Configuration
	{
		Key:         keys.CtrlS,
		Description: "Open settings",
		Category:    CategoryConfiguration,
		Handler:     shortcutSettings,
	},
	{
		Key:         keys.CtrlK,
		Description: "Edit API keys",
		Category:    CategoryConfiguration,
		Handler:     shortcutAPIKeys,
	},
}

// DisplayOnlyShortcuts are documented in the help modal but handled by the
// focused component.
var DisplayOnlyShortcuts = []Shortcut{
	{Key: keys.PgUp, DisplayKey: "PgUp/PgDn", Description: "Scroll the focused feed", Category: CategoryNavigation},
	{Key: keys.End, DisplayKey: "End", Description: "Jump to the newest entry", Category: CategoryNavigation},
	{Key: keys.CtrlUp, DisplayKey: "ctrl+up/down", Description: "Scroll chat while typing", Category: CategoryNavigation},
	{Key: keys.Enter, DisplayKey: "Enter", Description: "Send message", Category: CategoryChat},
	{Key: keys.CtrlO, Description: "Send message", Category: CategoryChat},
	{Key: keys.ShiftEnter, DisplayKey: "Shift+Enter", Description: "Insert a new line", Category: CategoryChat},
	{Key: helpKey, Description: "Show this help", Category: CategoryGeneral},
	{Key: keys.CtrlC, Description: "Quit", Category: CategoryGeneral},
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpKey {
		if m.focus == FocusSendBox {
			return m, nil, false // typed into the message
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.WithComponent("app").Debug("shortcut guard failed", "key", key, "focus", m.focus)
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections groups the applicable shortcuts by category for the help modal
func (m *Model) helpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range ShortcutRegistry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// shortcutForDisplayKey maps a help entry back to its registry key
func shortcutForDisplayKey(display string) (string, bool) {
	if display == helpKey {
		return helpKey, true
	}
	for _, s := range ShortcutRegistry {
		if s.Key == display || s.DisplayKey == display {
			return s.Key, true
		}
	}
	return "", false
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutFocusNext(m *Model) (tea.Model, tea.Cmd) {
	return m, m.cycleFocus(1)
}

func shortcutFocusPrev(m *Model) (tea.Model, tea.Cmd) {
	return m, m.cycleFocus(-1)
}

func shortcutToggleAutoScroll(m *Model) (tea.Model, tea.Cmd) {
	m.setAutoScroll(!m.autoScroll)
	m.config.SetAutoScroll(m.autoScroll)

	text := "Auto-scroll off"
	if m.autoScroll {
		text = "Auto-scroll on"
	}
	return m, tea.Batch(m.ShowFlashInfo(text), m.saveConfigOrFlash())
}

func shortcutToggleActivityFeed(m *Model) (tea.Model, tea.Cmd) {
	m.layout.ShowSecondary = !m.layout.ShowSecondary
	if m.layout.ShowSecondary && m.layout.Edge == layout.EdgeNone {
		m.layout.Edge = layout.EdgeRight
	}
	m.config.SetLayout(m.layout)

	focusCmd := m.resizePanels()

	text := "Activity feed hidden"
	if m.layout.Visible() {
		text = "Activity feed shown"
	}
	return m, tea.Batch(focusCmd, m.ShowFlashInfo(text), m.saveConfigOrFlash())
}

// dockCycle is the order ctrl+d moves the activity feed through
var dockCycle = []layout.Edge{layout.EdgeRight, layout.EdgeBottom, layout.EdgeLeft, layout.EdgeTop}

func shortcutCycleDockEdge(m *Model) (tea.Model, tea.Cmd) {
	next := dockCycle[0]
	for i, e := range dockCycle {
		if e == m.layout.Edge {
			next = dockCycle[(i+1)%len(dockCycle)]
			break
		}
	}
	m.layout.Edge = next
	m.config.SetLayout(m.layout)
	return m, tea.Batch(m.resizePanels(), m.ShowFlashInfo("Activity feed docked "+next.String()), m.saveConfigOrFlash())
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.showSettingsModal()
	return m, nil
}

func shortcutAPIKeys(m *Model) (tea.Model, tea.Cmd) {
	return m, m.readCredentials()
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpState(m.helpSections()))
	return m, nil
}

// Package ui provides the user interface components for the streamchat TUI.
//
// # Overview
//
// The ui package implements the visual components of streamchat using the
// Bubble Tea framework and Lipgloss styling library. Components follow the
// Model-Update-View pattern but never own feed data: the app model holds the
// chat and activity logs and hands snapshots to the panels.
//
// # Layout System
//
// With the activity feed docked on the right the screen looks like:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├───────────────────────────────────┬─────────────────┤
//	│                                   │                 │
//	│         Chat                      │   Activity      │
//	│                                   │   (dock size %) │
//	│                                   │                 │
//	├───────────────────────────────────┴─────────────────┤
//	│ Send box (1-6 lines)                                │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The activity feed can also dock left, top or bottom, or be hidden. The
// split itself is computed by the layout package.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// The send box height changes as the user types, so the feed area is always
// derived from it rather than cached.
//
// Header: Shows the channel, a mock indicator and the badge status.
//
// Footer: Shows context-aware key bindings and transient flash messages.
//
// FeedPanel: A bordered, scrollable list of feed entries. The chat and
// activity panels are both FeedPanels with different row renderers and
// their own scroll trackers.
//
// SendBox: Multi-line message composer. Enter or ctrl+o submits, shift+enter
// inserts a newline.
//
// Modal: Hosts the dialogs from the modals package: settings, API keys and
// the shortcut list.
//
// # Styles
//
// Styles are defined in styles.go and rebuilt from the active Theme. The
// default palette is built around ColorPrimary (#9146FF).
package ui

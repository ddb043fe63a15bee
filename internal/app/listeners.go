package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/streamchat/internal/bridge"
	"github.com/zhubert/streamchat/internal/config"
	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/logger"
	"github.com/zhubert/streamchat/internal/notification"
)

// listenForEvents waits for the next bridge event. Update re-arms it after
// every event so delivery stays in publish order.
func (m *Model) listenForEvents() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		select {
		case ev := <-sub.Events():
			return BridgeEventMsg{Event: ev}
		case <-sub.Done():
			return subscriptionClosedMsg{}
		}
	}
}

// startListener runs one of the bridge's start commands
func (m *Model) startListener(name string, start func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return listenerStartedMsg{Name: name, Err: start(ctx)}
	}
}

// initBadges reads the Helix credentials and asks the bridge to load badge
// metadata. The bridge reports success or failure as a BadgesReadyEvent.
func (m *Model) initBadges() tea.Cmd {
	b, ctx := m.bridge, m.ctx
	return func() tea.Msg {
		creds, err := b.ReadCredentials(ctx)
		if err != nil {
			return badgeInitMsg{Err: err}
		}
		clientID := creds[config.TwitchClientID]
		token := creds[config.TwitchAccessToken]
		broadcasterID := creds[config.TwitchBroadcasterID]
		if err := bridge.RequireBadgeCredentials(clientID, token, broadcasterID); err != nil {
			return badgeInitMsg{Skipped: true, Err: err}
		}
		// Errors arrive as a BadgesReadyEvent as well
		_ = b.InitializeBadges(ctx, clientID, token, broadcasterID)
		return nil
	}
}

// sendChat hands text to the bridge. There is no retry and no local echo.
func (m *Model) sendChat(text string) tea.Cmd {
	b, ctx := m.bridge, m.ctx
	return func() tea.Msg {
		return sendResultMsg{Err: b.SendChatMessage(ctx, text)}
	}
}

// readCredentials loads the stored credentials for the API keys modal
func (m *Model) readCredentials() tea.Cmd {
	b, ctx := m.bridge, m.ctx
	return func() tea.Msg {
		values, err := b.ReadCredentials(ctx)
		return credentialsLoadedMsg{Values: values, Err: err}
	}
}

// saveCredentials persists the API keys modal's values
func (m *Model) saveCredentials(values map[string]string) tea.Cmd {
	b, ctx := m.bridge, m.ctx
	return func() tea.Msg {
		return credentialsSavedMsg{Err: b.SaveCredentials(ctx, bridge.Credentials(values))}
	}
}

// notifyActivity pops a desktop notification for a donation or subscription
func notifyActivity(a feed.Activity) tea.Cmd {
	return func() tea.Msg {
		if _, err := notification.ForActivity(a); err != nil {
			logger.WithComponent("app").Warn("desktop notification failed", "activity", a.ID, "error", err)
		}
		return nil
	}
}

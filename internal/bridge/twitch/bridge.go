package twitch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/streamchat/internal/bridge"
	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/logger"
)

// Options configures the Twitch bridge. Channel is required for chat; the
// Helix values are optional and only enable badges and follows.
type Options struct {
	Username      string
	AccessToken   string
	Channel       string
	ClientID      string
	BroadcasterID string

	Credentials bridge.CredentialStore

	// Endpoint overrides, used by tests.
	HelixBaseURL string
	EventSubURL  string
}

// Bridge implements bridge.Bridge against Twitch.
type Bridge struct {
	*bridge.Hub
	opts   Options
	badges *feed.BadgeCache
	mock   *bridge.Mock

	startOnce sync.Once

	mu      sync.Mutex
	chat    *Chat
	cancels []context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a Twitch bridge. Nothing connects until StartChatListener.
func New(opts Options) *Bridge {
	hub := bridge.NewHub()
	return &Bridge{
		Hub:    hub,
		opts:   opts,
		badges: feed.NewBadgeCache(),
		mock: bridge.NewMock(bridge.MockOptions{
			Hub:         hub,
			Credentials: opts.Credentials,
			Username:    opts.Username,
		}),
	}
}

func (b *Bridge) helix() *HelixClient {
	return b.helixFor(b.opts.ClientID, b.opts.AccessToken)
}

func (b *Bridge) helixFor(clientID, token string) *HelixClient {
	hc := NewHelixClient(clientID, token)
	if b.opts.HelixBaseURL != "" {
		hc.BaseURL = b.opts.HelixBaseURL
	}
	return hc
}

func (b *Bridge) spawn(ctx context.Context, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancels = append(b.cancels, cancel)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer cancel()
		if err := fn(ctx); err != nil && ctx.Err() == nil {
			logger.WithComponent("twitch").Error("listener stopped", "listener", name, "error", err)
		}
	}()
}

// StartChatListener connects to chat and, when Helix credentials are present,
// starts the follow listener. Badges are loaded separately through
// InitializeBadges. Only the first call has an effect.
func (b *Bridge) StartChatListener(ctx context.Context) error {
	if b.opts.Channel == "" {
		return pErrors.ListenerStartFailed("twitch chat", pErrors.CredentialMissing("TWITCH_CHANNEL"))
	}

	b.startOnce.Do(func() {
		log := logger.WithComponent("twitch")
		chat := NewChat(b.opts.Username, b.opts.AccessToken, b.opts.Channel, b.badges, b.Publish)
		b.mu.Lock()
		b.chat = chat
		b.mu.Unlock()
		b.spawn(ctx, "chat", chat.Run)
		log.Info("started twitch monitoring", "channel", b.opts.Channel)

		if err := bridge.RequireBadgeCredentials(b.opts.ClientID, b.opts.AccessToken, b.opts.BroadcasterID); err != nil {
			log.Warn("helix credentials missing, follows disabled", "error", err)
			return
		}

		es := &EventSub{
			URL:           b.opts.EventSubURL,
			Helix:         b.helix(),
			BroadcasterID: b.opts.BroadcasterID,
			OnFollow: func(f Follow) {
				name := f.UserName
				if name == "" {
					name = f.UserLogin
				}
				b.Publish(bridge.FollowEvent{Username: name, Source: feed.SourceTwitch, Time: f.FollowedAt})
			},
		}
		b.spawn(ctx, "eventsub", es.Run)
	})
	return nil
}

// StartMockEvents layers the random activity generator on top of real chat.
func (b *Bridge) StartMockEvents(ctx context.Context) error {
	return b.mock.StartMockEvents(ctx)
}

// ReadCredentials returns the stored credentials.
func (b *Bridge) ReadCredentials(ctx context.Context) (bridge.Credentials, error) {
	return b.mock.ReadCredentials(ctx)
}

// SaveCredentials persists creds. They take effect on the next start.
func (b *Bridge) SaveCredentials(ctx context.Context, creds bridge.Credentials) error {
	return b.mock.SaveCredentials(ctx, creds)
}

// SendChatMessage says text in the channel. Twitch does not relay our own
// messages back over IRC, so a sent message is published as a chat event here
// once the client accepted it.
func (b *Bridge) SendChatMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return pErrors.SendFailed(pErrors.E(pErrors.KindInvalid, "message is empty"))
	}
	b.mu.Lock()
	chat := b.chat
	b.mu.Unlock()
	if chat == nil {
		return pErrors.SendFailed(pErrors.E(pErrors.KindBridge, "chat listener not started"))
	}
	if err := chat.Say(text); err != nil {
		return err
	}

	user := b.opts.Username
	if user == "" {
		user = b.opts.Channel
	}
	b.Publish(bridge.ChatMessageEvent{
		User:    user,
		Color:   ownColor,
		Message: text,
		Source:  feed.SourceTwitch,
		Time:    time.Now(),
	})
	return nil
}

// ownColor is used for messages we sent, whose chat color IRC never reports back
const ownColor = "#9146FF"

// InitializeBadges loads global and channel badges from Helix and publishes a
// BadgesReadyEvent either way.
func (b *Bridge) InitializeBadges(ctx context.Context, clientID, accessToken, broadcasterID string) error {
	if err := bridge.RequireBadgeCredentials(clientID, accessToken, broadcasterID); err != nil {
		b.Publish(bridge.BadgesReadyEvent{Err: err})
		return err
	}
	n, err := b.helixFor(clientID, accessToken).LoadBadges(ctx, b.badges, broadcasterID)
	if err != nil {
		b.Publish(bridge.BadgesReadyEvent{Err: err})
		return err
	}
	logger.WithComponent("twitch").Info("badges initialized", "sets", n)
	b.Publish(bridge.BadgesReadyEvent{Count: n})
	return nil
}

// Close disconnects everything and releases all subscriptions.
func (b *Bridge) Close() error {
	b.mu.Lock()
	cancels := b.cancels
	b.cancels = nil
	b.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	_ = b.mock.Close()
	b.wg.Wait()
	return nil
}

var _ bridge.Bridge = (*Bridge)(nil)

package twitch

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/zhubert/streamchat/internal/bridge"
	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/logger"
)

// ircClient is the subset of *twitch.Client the chat uses.
type ircClient interface {
	OnConnect(func())
	OnPrivateMessage(func(twitch.PrivateMessage))
	OnUserNoticeMessage(func(twitch.UserNoticeMessage))
	Join(channels ...string)
	Say(channel, text string)
	Connect() error
	Disconnect() error
}

// Chat relays a single channel's IRC chat into bridge events.
type Chat struct {
	client  ircClient
	channel string
	badges  *feed.BadgeCache
	publish func(bridge.Event)

	mu        sync.Mutex
	connected bool
}

// NewChat creates a chat for channel. An empty token connects anonymously,
// which can read but not send.
func NewChat(username, token, channel string, badges *feed.BadgeCache, publish func(bridge.Event)) *Chat {
	var client *twitch.Client
	if token == "" {
		client = twitch.NewAnonymousClient()
	} else {
		if !strings.HasPrefix(token, "oauth:") {
			token = "oauth:" + token
		}
		client = twitch.NewClient(username, token)
	}
	return newChat(client, channel, badges, publish)
}

func newChat(client ircClient, channel string, badges *feed.BadgeCache, publish func(bridge.Event)) *Chat {
	c := &Chat{
		client:  client,
		channel: strings.ToLower(strings.TrimPrefix(channel, "#")),
		badges:  badges,
		publish: publish,
	}
	client.OnConnect(c.handleConnect)
	client.OnPrivateMessage(c.handlePrivateMessage)
	client.OnUserNoticeMessage(c.handleUserNotice)
	return c
}

// Run joins the channel and blocks until ctx is done or the connection drops.
func (c *Chat) Run(ctx context.Context) error {
	c.client.Join(c.channel)

	stop := context.AfterFunc(ctx, func() {
		_ = c.client.Disconnect()
	})
	defer stop()

	err := c.client.Connect()
	c.setConnected(false)
	if ctx.Err() != nil || errors.Is(err, twitch.ErrClientDisconnected) {
		return nil
	}
	return pErrors.ListenerStartFailed("twitch chat", err)
}

// Say sends text to the channel.
func (c *Chat) Say(text string) error {
	if !c.Connected() {
		return pErrors.SendFailed(pErrors.E(pErrors.KindNetwork, "chat is not connected"))
	}
	c.client.Say(c.channel, text)
	return nil
}

// Connected reports whether the IRC connection is up.
func (c *Chat) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Chat) setConnected(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = v
}

func (c *Chat) handleConnect() {
	c.setConnected(true)
	logger.WithComponent("twitch-chat").Info("connected to twitch chat", "channel", c.channel)
}

func (c *Chat) handlePrivateMessage(msg twitch.PrivateMessage) {
	user := msg.User.DisplayName
	if user == "" {
		user = msg.User.Name
	}
	ts := msg.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	versions := make(map[string]string, len(msg.User.Badges))
	for id, v := range msg.User.Badges {
		versions[id] = strconv.Itoa(v)
	}

	c.publish(bridge.ChatMessageEvent{
		ID:      msg.ID,
		User:    user,
		Color:   bridge.ColorOrRandom(msg.User.Color, rand.IntN),
		Message: msg.Message,
		Badges:  c.badges.ResolveAll(versions),
		Source:  feed.SourceTwitch,
		Time:    ts,
	})

	// 100 bits is one US dollar.
	if msg.Bits > 0 {
		c.publish(bridge.DonationEvent{
			Username: user,
			Amount:   float64(msg.Bits) / 100,
			Message:  msg.Message,
			Source:   feed.SourceTwitch,
			Time:     ts,
		})
	}
}

func (c *Chat) handleUserNotice(msg twitch.UserNoticeMessage) {
	ts := msg.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	user := msg.User.DisplayName
	if user == "" {
		user = msg.User.Name
	}
	tier := feed.TierFromPlan(msg.MsgParams["msg-param-sub-plan"])

	switch msg.MsgID {
	case "sub", "resub":
		c.publish(bridge.SubscriptionEvent{
			Username: user,
			Tier:     tier,
			Message:  msg.Message,
			Source:   feed.SourceTwitch,
			Time:     ts,
		})
	case "subgift", "anonsubgift":
		recipient := msg.MsgParams["msg-param-recipient-display-name"]
		if recipient == "" {
			recipient = msg.MsgParams["msg-param-recipient-user-name"]
		}
		if recipient == "" {
			recipient = user
		}
		c.publish(bridge.SubscriptionEvent{
			Username: recipient,
			Tier:     tier,
			Gift:     true,
			Source:   feed.SourceTwitch,
			Time:     ts,
		})
	}
}

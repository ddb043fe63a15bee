package bridge

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/logger"
)

// MockOptions configures the mock bridge.
type MockOptions struct {
	// Scenario replaces the random chat generator when set.
	Scenario *Scenario
	// Credentials backs Read/SaveCredentials. Nil disables them.
	Credentials CredentialStore
	// Username is the author of echoed outbound messages.
	Username string
	// Hub receives the generated events. A new hub is created when nil.
	Hub *Hub

	MinEventDelay time.Duration // default 5s
	MaxEventDelay time.Duration // default 15s
	ChatInterval  time.Duration // default 3s

	// Rand drives every random choice. Defaults to an unseeded source.
	Rand *rand.Rand
}

func (o *MockOptions) setDefaults() {
	if o.Username == "" {
		o.Username = "you"
	}
	if o.MinEventDelay <= 0 {
		o.MinEventDelay = 5 * time.Second
	}
	if o.MaxEventDelay < o.MinEventDelay {
		o.MaxEventDelay = o.MinEventDelay + 10*time.Second
	}
	if o.ChatInterval <= 0 {
		o.ChatInterval = 3 * time.Second
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// Mock is a Bridge that fabricates chat and activity. Outbound messages are
// echoed back as chat events, the way a chat server would relay them.
type Mock struct {
	*Hub
	opts   MockOptions
	badges *feed.BadgeCache

	chatOnce   sync.Once
	eventsOnce sync.Once

	mu      sync.Mutex // guards rng and cancels
	cancels []context.CancelFunc
	wg      sync.WaitGroup
}

// NewMock creates a mock bridge.
func NewMock(opts MockOptions) *Mock {
	opts.setDefaults()
	hub := opts.Hub
	if hub == nil {
		hub = NewHub()
	}
	return &Mock{
		Hub:    hub,
		opts:   opts,
		badges: feed.NewBadgeCache(),
	}
}

var sampleChatters = []string{"Kappa_Keeper", "PogChampion", "lurker42", "NightBot_Fan", "speedrunSam", "cozy_viewer"}

var sampleMessages = []string{
	"hello chat 👋",
	"LET'S GOOO 🔥🔥🔥",
	"that was so clean",
	"first time here, love the vibes ❤️",
	"gg wp",
	"what game is next?",
	"🎉🎉",
	"can you explain that last part again?",
	"the music is great today 🎶",
	"pog",
}

var sampleBadges = []map[string]string{
	nil,
	{"subscriber": "0"},
	{"moderator": "1"},
	{"vip": "1", "subscriber": "12"},
	{"broadcaster": "1"},
}

func (m *Mock) intN(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts.Rand.IntN(n)
}

func (m *Mock) spawn(ctx context.Context, fn func(context.Context)) {
	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancels = append(m.cancels, cancel)
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		fn(ctx)
	}()
}

// StartChatListener starts the simulated chat, or the scenario when one is
// configured. Only the first call has an effect.
func (m *Mock) StartChatListener(ctx context.Context) error {
	m.chatOnce.Do(func() {
		log := logger.WithComponent("mock")
		if s := m.opts.Scenario; s != nil {
			log.Info("playing scenario", "name", s.Name, "steps", len(s.Steps), "loop", s.Loop)
			m.spawn(ctx, func(ctx context.Context) {
				if err := s.Play(ctx, m.Publish); err != nil && ctx.Err() == nil {
					log.Warn("scenario stopped", "error", err)
				}
			})
			return
		}

		log.Info("started simulated chat", "interval", m.opts.ChatInterval)
		m.spawn(ctx, func(ctx context.Context) {
			for i := range 3 {
				m.Publish(m.chatEvent(sampleChatters[i], sampleMessages[i]))
			}
			ticker := time.NewTicker(m.opts.ChatInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					user := sampleChatters[m.intN(len(sampleChatters))]
					m.Publish(m.chatEvent(user, sampleMessages[m.intN(len(sampleMessages))]))
				}
			}
		})
	})
	return nil
}

func (m *Mock) chatEvent(user, text string) ChatMessageEvent {
	source := feed.SourceTwitch
	if m.intN(2) == 1 {
		source = feed.SourceYouTube
	}
	return ChatMessageEvent{
		User:    user,
		Color:   RandomColor(m.intN),
		Message: text,
		Badges:  m.badges.ResolveAll(sampleBadges[m.intN(len(sampleBadges))]),
		Source:  source,
		Time:    time.Now(),
	}
}

// StartMockEvents emits a random follow, donation or subscription every
// MinEventDelay to MaxEventDelay. Only the first call has an effect.
func (m *Mock) StartMockEvents(ctx context.Context) error {
	m.eventsOnce.Do(func() {
		logger.WithComponent("mock").Info("started mock events generator")
		m.spawn(ctx, func(ctx context.Context) {
			for {
				timer := time.NewTimer(m.nextDelay())
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
				m.Publish(m.randomActivity())
			}
		})
	})
	return nil
}

func (m *Mock) nextDelay() time.Duration {
	span := m.opts.MaxEventDelay - m.opts.MinEventDelay
	if span <= 0 {
		return m.opts.MinEventDelay
	}
	return m.opts.MinEventDelay + time.Duration(m.intN(int(span/time.Millisecond)+1))*time.Millisecond
}

func (m *Mock) randomActivity() Event {
	now := time.Now()
	switch m.intN(3) {
	case 0:
		var msg string
		if m.intN(2) == 0 {
			msg = "Thanks for the stream! Keep up the good work!"
		}
		amount := float64(100+m.intN(9900)) / 100
		return DonationEvent{Username: fmt.Sprintf("Donor%d", m.intN(1000)), Amount: amount, Message: msg, Source: feed.SourceTwitch, Time: now}
	case 1:
		return SubscriptionEvent{
			Username: fmt.Sprintf("Sub%d", m.intN(1000)),
			Tier:     fmt.Sprintf("%d", m.intN(3)+1),
			Gift:     m.intN(2) == 0,
			Source:   feed.SourceTwitch,
			Time:     now,
		}
	default:
		return FollowEvent{Username: fmt.Sprintf("Follower%d", m.intN(1000)), Source: feed.SourceTwitch, Time: now}
	}
}

// ReadCredentials returns the stored credentials.
func (m *Mock) ReadCredentials(ctx context.Context) (Credentials, error) {
	if m.opts.Credentials == nil {
		return nil, pErrors.BridgeUnavailable("ReadCredentials")
	}
	values, err := m.opts.Credentials.Read()
	if err != nil {
		return nil, err
	}
	return Credentials(values), nil
}

// SaveCredentials persists creds.
func (m *Mock) SaveCredentials(ctx context.Context, creds Credentials) error {
	if m.opts.Credentials == nil {
		return pErrors.BridgeUnavailable("SaveCredentials")
	}
	return m.opts.Credentials.Save(creds)
}

// SendChatMessage echoes text back as a chat message from Username.
func (m *Mock) SendChatMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return pErrors.SendFailed(pErrors.E(pErrors.KindInvalid, "message is empty"))
	}
	if err := ctx.Err(); err != nil {
		return pErrors.SendFailed(err)
	}
	m.Publish(ChatMessageEvent{
		User:    m.opts.Username,
		Message: text,
		Color:   "#9146FF",
		Badges:  m.badges.ResolveAll(map[string]string{"broadcaster": "1"}),
		Source:  feed.SourceTwitch,
		Time:    time.Now(),
	})
	return nil
}

// InitializeBadges loads a built-in set of global badges. It needs the same
// three values the Twitch bridge does so misconfiguration shows up in mock
// runs too.
func (m *Mock) InitializeBadges(ctx context.Context, clientID, accessToken, broadcasterID string) error {
	if err := RequireBadgeCredentials(clientID, accessToken, broadcasterID); err != nil {
		m.Publish(BadgesReadyEvent{Err: err})
		return err
	}

	m.badges.AddGlobal(mockBadgeSets)
	m.Publish(BadgesReadyEvent{Count: m.badges.Len()})
	return nil
}

var mockBadgeSets = []feed.BadgeSet{
	{SetID: "broadcaster", Versions: []feed.BadgeVersion{{ID: "1", ImageURL1x: feed.BadgeURL("5527c58c-fb7d-422d-b71b-f309dcb85cc1", "1"), Title: "Broadcaster"}}},
	{SetID: "moderator", Versions: []feed.BadgeVersion{{ID: "1", ImageURL1x: feed.BadgeURL("3267646d-33f0-4b17-b3df-f923a41db1d0", "1"), Title: "Moderator"}}},
	{SetID: "vip", Versions: []feed.BadgeVersion{{ID: "1", ImageURL1x: feed.BadgeURL("b817aba4-fad8-49e2-b88a-7cc744dfa6ec", "1"), Title: "VIP"}}},
	{SetID: "subscriber", Versions: []feed.BadgeVersion{
		{ID: "0", ImageURL1x: feed.BadgeURL("5d9f2208-5dd8-11e7-8513-2ff4adfae661", "1"), Title: "Subscriber"},
		{ID: "12", ImageURL1x: feed.BadgeURL("5d9f2208-5dd8-11e7-8513-2ff4adfae661", "1"), Title: "1-Year Subscriber"},
	}},
}

// Close stops every generator and releases all subscriptions.
func (m *Mock) Close() error {
	m.mu.Lock()
	cancels := m.cancels
	m.cancels = nil
	m.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	m.Hub.Close()
	m.wg.Wait()
	return nil
}

var _ Bridge = (*Mock)(nil)

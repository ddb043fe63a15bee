// Package bridge defines the boundary between the UI and whatever talks to the
// streaming platforms. The UI issues Commands and consumes Events; adapters
// such as the mock generator or the Twitch client implement both.
package bridge

import (
	"context"
	"time"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
)

// EventKind identifies an Event variant.
type EventKind int

const (
	KindChatMessage EventKind = iota
	KindFollow
	KindDonation
	KindSubscription
	KindBadgesReady
)

// AllKinds is every event kind the UI subscribes to.
var AllKinds = []EventKind{KindChatMessage, KindFollow, KindDonation, KindSubscription, KindBadgesReady}

func (k EventKind) String() string {
	switch k {
	case KindChatMessage:
		return "chat-message"
	case KindFollow:
		return "follow"
	case KindDonation:
		return "donation"
	case KindSubscription:
		return "subscription"
	case KindBadgesReady:
		return "badges-ready"
	default:
		return "unknown"
	}
}

// Event is the closed set of inbound events.
type Event interface {
	Kind() EventKind
	event()
}

// ChatMessageEvent is a chat line received from a platform.
type ChatMessageEvent struct {
	ID      string // platform message id, "" when the platform has none
	User    string
	Color   string
	Message string
	Badges  []feed.Badge
	Source  feed.Source
	Time    time.Time
}

// FollowEvent is a new follower.
type FollowEvent struct {
	Username string
	Source   feed.Source
	Time     time.Time
}

// DonationEvent is a currency donation or cheer.
type DonationEvent struct {
	Username string
	Amount   float64
	Message  string
	Source   feed.Source
	Time     time.Time
}

// SubscriptionEvent is a new or gifted subscription.
type SubscriptionEvent struct {
	Username string
	Tier     string
	Gift     bool
	Message  string
	Source   feed.Source
	Time     time.Time
}

// BadgesReadyEvent reports the outcome of badge metadata initialization.
type BadgesReadyEvent struct {
	Count int
	Err   error
}

func (ChatMessageEvent) Kind() EventKind  { return KindChatMessage }
func (FollowEvent) Kind() EventKind       { return KindFollow }
func (DonationEvent) Kind() EventKind     { return KindDonation }
func (SubscriptionEvent) Kind() EventKind { return KindSubscription }
func (BadgesReadyEvent) Kind() EventKind  { return KindBadgesReady }

func (ChatMessageEvent) event()  {}
func (FollowEvent) event()       {}
func (DonationEvent) event()     {}
func (SubscriptionEvent) event() {}
func (BadgesReadyEvent) event()  {}

// Credentials maps credential names (e.g. TWITCH_CLIENT_ID) to values.
type Credentials map[string]string

// Commands are the outbound intents the UI can issue.
type Commands interface {
	StartChatListener(ctx context.Context) error
	StartMockEvents(ctx context.Context) error
	ReadCredentials(ctx context.Context) (Credentials, error)
	SaveCredentials(ctx context.Context, creds Credentials) error
	SendChatMessage(ctx context.Context, text string) error
	InitializeBadges(ctx context.Context, clientID, accessToken, broadcasterID string) error
}

// Events hands out scoped subscriptions to inbound events.
type Events interface {
	Subscribe(kinds ...EventKind) *Subscription
}

// Bridge is a complete adapter.
type Bridge interface {
	Commands
	Events
	Close() error
}

// CredentialStore persists named credentials.
type CredentialStore interface {
	Read() (map[string]string, error)
	Save(values map[string]string) error
}

// ToChatMessage converts a chat event into a feed entry.
func ToChatMessage(ev ChatMessageEvent) feed.ChatMessage {
	msg := feed.NewChatMessage(ev.ID, ev.User, ev.Source, ev.Message, orNow(ev.Time))
	msg.Color = ev.Color
	msg.Badges = ev.Badges
	return msg
}

// ToActivity converts an activity event into a feed entry. Events that are not
// activities report false.
func ToActivity(ev Event) (feed.Activity, bool, error) {
	var (
		user    string
		source  feed.Source
		ts      time.Time
		payload feed.ActivityPayload
	)
	switch e := ev.(type) {
	case FollowEvent:
		user, source, ts = e.Username, e.Source, e.Time
		payload = feed.Follow{}
	case DonationEvent:
		user, source, ts = e.Username, e.Source, e.Time
		payload = feed.Donation{Amount: e.Amount, Message: e.Message}
	case SubscriptionEvent:
		user, source, ts = e.Username, e.Source, e.Time
		payload = feed.Subscription{Tier: e.Tier, Gift: e.Gift, Message: e.Message}
	default:
		return feed.Activity{}, false, nil
	}
	if source == "" {
		source = feed.SourceTwitch
	}
	a, err := feed.NewActivity(user, source, orNow(ts), payload)
	if err != nil {
		return feed.Activity{}, true, err
	}
	return a, true, nil
}

// RequireBadgeCredentials reports the first missing badge credential.
func RequireBadgeCredentials(clientID, accessToken, broadcasterID string) error {
	switch {
	case clientID == "":
		return pErrors.CredentialMissing("TWITCH_CLIENT_ID")
	case accessToken == "":
		return pErrors.CredentialMissing("TWITCH_ACCESS_TOKEN")
	case broadcasterID == "":
		return pErrors.CredentialMissing("TWITCH_BROADCASTER_ID")
	}
	return nil
}

func orNow(ts time.Time) time.Time {
	if ts.IsZero() {
		return time.Now()
	}
	return ts
}

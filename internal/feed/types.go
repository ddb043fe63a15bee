// Package feed holds the immutable records shown in the chat and activity
// panels, the append-only log they live in, and the text formatting shared by
// both renderers.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pErrors "github.com/zhubert/streamchat/internal/errors"
)

// Source identifies the platform an entry came from.
type Source string

const (
	SourceTwitch  Source = "twitch"
	SourceYouTube Source = "youtube"
)

// ParseSource returns the Source for s, defaulting to Twitch.
func ParseSource(s string) Source {
	if strings.EqualFold(s, string(SourceYouTube)) {
		return SourceYouTube
	}
	return SourceTwitch
}

// Icon is the one-cell glyph used in place of the platform logo.
func (s Source) Icon() string {
	if s == SourceYouTube {
		return "▶"
	}
	return "◆"
}

// Badge is a chat author badge reference.
type Badge struct {
	ID       string // badge set id, e.g. "subscriber"
	Version  string // version within the set, e.g. "12"
	ImageURL string
	Title    string
}

// ChatMessage is a single chat line.
type ChatMessage struct {
	ID        string
	Author    string
	Source    Source
	Content   string
	Timestamp time.Time
	Color     string  // optional hex color, "" when the author has none
	Badges    []Badge // optional, ordered as received
}

// EntryID implements Entry.
func (m ChatMessage) EntryID() string { return m.ID }

// NewChatMessage builds a message with a fresh ID when id is empty.
func NewChatMessage(id, author string, source Source, content string, ts time.Time) ChatMessage {
	if id == "" {
		id = uuid.New().String()
	}
	return ChatMessage{
		ID:        id,
		Author:    author,
		Source:    source,
		Content:   content,
		Timestamp: ts,
	}
}

// ActivityKind enumerates the activity payloads.
type ActivityKind int

const (
	KindFollow ActivityKind = iota
	KindDonation
	KindSubscription
)

func (k ActivityKind) String() string {
	switch k {
	case KindFollow:
		return "follow"
	case KindDonation:
		return "donation"
	case KindSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// ActivityPayload is the closed set of activity-specific data. Only Follow,
// Donation and Subscription implement it.
type ActivityPayload interface {
	Kind() ActivityKind
	activityPayload()
}

// Follow carries no data beyond the activity's username.
type Follow struct{}

// Donation is a currency donation.
type Donation struct {
	Amount  float64
	Message string
}

// Subscription is a paid or gifted subscription.
type Subscription struct {
	Tier    string // "1", "2", "3" or "Prime"; "" when unknown
	Gift    bool
	Message string
}

func (Follow) Kind() ActivityKind       { return KindFollow }
func (Donation) Kind() ActivityKind     { return KindDonation }
func (Subscription) Kind() ActivityKind { return KindSubscription }

func (Follow) activityPayload()       {}
func (Donation) activityPayload()     {}
func (Subscription) activityPayload() {}

// Activity is a viewer activity event.
type Activity struct {
	ID        string
	Username  string
	Source    Source
	Timestamp time.Time
	Payload   ActivityPayload
}

// EntryID implements Entry.
func (a Activity) EntryID() string { return a.ID }

// Kind returns the payload kind.
func (a Activity) Kind() ActivityKind { return a.Payload.Kind() }

// Message returns the optional free-text message of the activity.
func (a Activity) Message() string {
	switch p := a.Payload.(type) {
	case Donation:
		return p.Message
	case Subscription:
		return p.Message
	default:
		return ""
	}
}

// NewActivity builds an activity with a fresh ID. Donations with a negative
// amount are rejected.
func NewActivity(username string, source Source, ts time.Time, payload ActivityPayload) (Activity, error) {
	if payload == nil {
		return Activity{}, pErrors.E(pErrors.Op("feed.NewActivity"), pErrors.KindInvalid, "activity payload is nil")
	}
	if d, ok := payload.(Donation); ok && d.Amount < 0 {
		return Activity{}, pErrors.E(pErrors.Op("feed.NewActivity"), pErrors.KindInvalid,
			fmt.Sprintf("donation amount %v is negative", d.Amount))
	}
	return Activity{
		ID:        uuid.New().String(),
		Username:  username,
		Source:    source,
		Timestamp: ts,
		Payload:   payload,
	}, nil
}

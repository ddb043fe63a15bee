package bridge

import (
	"testing"
	"time"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
)

func TestToChatMessage(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	msg := ToChatMessage(ChatMessageEvent{
		ID:      "abc",
		User:    "Kappa",
		Color:   "#ff0000",
		Message: "hi",
		Badges:  []feed.Badge{{ID: "vip", Version: "1"}},
		Source:  feed.SourceTwitch,
		Time:    ts,
	})
	if msg.ID != "abc" || msg.Author != "Kappa" || msg.Color != "#ff0000" || len(msg.Badges) != 1 {
		t.Errorf("msg = %+v", msg)
	}
	if !msg.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v", msg.Timestamp)
	}

	generated := ToChatMessage(ChatMessageEvent{User: "x"})
	if generated.ID == "" || generated.Timestamp.IsZero() {
		t.Error("missing id and time should be filled in")
	}
}

func TestToActivity(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		kind feed.ActivityKind
		text string
	}{
		{"follow", FollowEvent{Username: "a"}, feed.KindFollow, "a followed!"},
		{"donation", DonationEvent{Username: "b", Amount: 5}, feed.KindDonation, "b donated $5.00!"},
		{"subscription", SubscriptionEvent{Username: "c", Tier: "1", Gift: true}, feed.KindSubscription, "c subscribed! (Tier 1, gift)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok, err := ToActivity(tt.ev)
			if err != nil || !ok {
				t.Fatalf("ToActivity = %v, %v", ok, err)
			}
			if a.Kind() != tt.kind {
				t.Errorf("kind = %v", a.Kind())
			}
			if a.Source != feed.SourceTwitch {
				t.Errorf("source should default to twitch, got %q", a.Source)
			}
			if got := feed.ActivityText(a); got != tt.text {
				t.Errorf("text = %q, want %q", got, tt.text)
			}
		})
	}

	if _, ok, _ := ToActivity(ChatMessageEvent{}); ok {
		t.Error("chat is not an activity")
	}
	if _, ok, err := ToActivity(DonationEvent{Username: "x", Amount: -1}); !ok || !pErrors.Is(err, pErrors.KindInvalid) {
		t.Errorf("negative donation = %v, %v", ok, err)
	}
}

func TestRequireBadgeCredentials(t *testing.T) {
	if err := RequireBadgeCredentials("a", "b", "c"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := RequireBadgeCredentials("", "b", "c"); !pErrors.Is(err, pErrors.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}

func TestColorOrRandom(t *testing.T) {
	if ColorOrRandom("#123456", nil) != "#123456" {
		t.Error("explicit color should be kept")
	}
	if got := ColorOrRandom("", func(int) int { return 0 }); got != readableColors[0] {
		t.Errorf("random color = %s", got)
	}
}

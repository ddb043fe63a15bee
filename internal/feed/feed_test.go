package feed

import (
	"fmt"
	"strings"
	"testing"
	"time"

	pErrors "github.com/zhubert/streamchat/internal/errors"
)

func TestLog_ArrivalOrder(t *testing.T) {
	l := NewLog[ChatMessage]()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Timestamps deliberately out of order: arrival order wins.
	offsets := []int{30, 10, 20, 0}
	for i, off := range offsets {
		msg := NewChatMessage(fmt.Sprintf("m%d", i), "user", SourceTwitch, "hi", base.Add(time.Duration(off)*time.Second))
		if err := l.Append(msg); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}

	snap := l.Snapshot()
	if len(snap) != len(offsets) {
		t.Fatalf("len = %d, want %d", len(snap), len(offsets))
	}
	for i, m := range snap {
		if m.ID != fmt.Sprintf("m%d", i) {
			t.Errorf("snap[%d].ID = %s, want m%d", i, m.ID, i)
		}
	}
}

func TestLog_RejectsDuplicateID(t *testing.T) {
	l := NewLog[ChatMessage]()
	msg := NewChatMessage("same", "a", SourceTwitch, "one", time.Now())
	if err := l.Append(msg); err != nil {
		t.Fatal(err)
	}

	err := l.Append(NewChatMessage("same", "b", SourceTwitch, "two", time.Now()))
	if !pErrors.Is(err, pErrors.KindInvalid) {
		t.Fatalf("expected KindInvalid, got %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("duplicate should not be appended, len = %d", l.Len())
	}
	if last, _ := l.Last(); last.Content != "one" {
		t.Errorf("original entry should be kept, got %q", last.Content)
	}
}

func TestLog_SnapshotIsolation(t *testing.T) {
	l := NewLog[ChatMessage]()
	_ = l.Append(NewChatMessage("a", "u", SourceTwitch, "1", time.Now()))
	snap := l.Snapshot()

	_ = l.Append(NewChatMessage("b", "u", SourceTwitch, "2", time.Now()))
	if len(snap) != 1 {
		t.Errorf("old snapshot changed length: %d", len(snap))
	}

	// Appending to the snapshot must not write into the log.
	snap = append(snap, NewChatMessage("c", "u", SourceTwitch, "3", time.Now()))
	if got := l.Snapshot()[1].ID; got != "b" {
		t.Errorf("log entry overwritten through snapshot: %s", got)
	}
	if l.Contains("c") {
		t.Error("snapshot append leaked into log")
	}
}

func TestLog_Empty(t *testing.T) {
	l := NewLog[Activity]()
	if _, ok := l.Last(); ok {
		t.Error("Last on empty log should report false")
	}
	if len(l.Snapshot()) != 0 {
		t.Error("empty snapshot expected")
	}
}

func TestNewChatMessage_GeneratesID(t *testing.T) {
	a := NewChatMessage("", "u", SourceYouTube, "x", time.Now())
	b := NewChatMessage("", "u", SourceYouTube, "x", time.Now())
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct generated ids, got %q and %q", a.ID, b.ID)
	}
}

func TestNewActivity(t *testing.T) {
	if _, err := NewActivity("u", SourceTwitch, time.Now(), Donation{Amount: -1}); !pErrors.Is(err, pErrors.KindInvalid) {
		t.Errorf("negative donation should be invalid, got %v", err)
	}
	if _, err := NewActivity("u", SourceTwitch, time.Now(), nil); err == nil {
		t.Error("nil payload should be rejected")
	}

	a, err := NewActivity("u", SourceTwitch, time.Now(), Subscription{Tier: "1", Message: "hype"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Kind() != KindSubscription {
		t.Errorf("Kind = %v", a.Kind())
	}
	if a.Message() != "hype" {
		t.Errorf("Message = %q", a.Message())
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{5, "$5.00"},
		{5.1, "$5.10"},
		{5.999, "$6.00"},
		{0, "$0.00"},
		{1234.5, "$1234.50"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.amount); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestActivityText(t *testing.T) {
	mk := func(p ActivityPayload) Activity {
		a, err := NewActivity("Kappa", SourceTwitch, time.Now(), p)
		if err != nil {
			t.Fatal(err)
		}
		return a
	}

	tests := []struct {
		name string
		a    Activity
		want string
	}{
		{"follow", mk(Follow{}), "Kappa followed!"},
		{"donation", mk(Donation{Amount: 5}), "Kappa donated $5.00!"},
		{"donation rounding", mk(Donation{Amount: 5.999}), "Kappa donated $6.00!"},
		{"sub plain", mk(Subscription{}), "Kappa subscribed!"},
		{"sub tier", mk(Subscription{Tier: "2"}), "Kappa subscribed! (Tier 2)"},
		{"sub gift", mk(Subscription{Tier: "1", Gift: true}), "Kappa subscribed! (Tier 1, gift)"},
		{"sub prime", mk(Subscription{Tier: "Prime"}), "Kappa subscribed! (Prime)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActivityText(tt.a); got != tt.want {
				t.Errorf("ActivityText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTierFromPlan(t *testing.T) {
	for plan, want := range map[string]string{"1000": "1", "2000": "2", "3000": "3", "Prime": "Prime", "": ""} {
		if got := TierFromPlan(plan); got != want {
			t.Errorf("TierFromPlan(%q) = %q, want %q", plan, got, want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 3, 4, 15, 4, 5, 0, time.Local)
	if got := FormatTime(ts); got != "3:04:05 PM" {
		t.Errorf("FormatTime = %q", got)
	}
}

func TestParseSource(t *testing.T) {
	if ParseSource("YouTube") != SourceYouTube {
		t.Error("expected youtube")
	}
	if ParseSource("anything") != SourceTwitch {
		t.Error("expected twitch default")
	}
}

func TestBadgeURL(t *testing.T) {
	got := BadgeURL("1234", "1")
	if !strings.HasSuffix(got, "/badges/v1/1234/1/1") {
		t.Errorf("BadgeURL = %q", got)
	}
}

func TestBadgeCache_Precedence(t *testing.T) {
	c := NewBadgeCache()
	c.AddGlobal([]BadgeSet{{SetID: "subscriber", Versions: []BadgeVersion{{ID: "0", ImageURL1x: "global-url", Title: "Subscriber"}}}})
	c.AddChannel([]BadgeSet{{SetID: "subscriber", Versions: []BadgeVersion{{ID: "0", ImageURL1x: "channel-url", Title: "Sub"}}}})
	c.AddGlobal([]BadgeSet{{SetID: "moderator", Versions: []BadgeVersion{{ID: "1", ImageURL1x: "mod-url", Title: "Moderator"}}}})

	if got := c.Resolve("subscriber", "0"); got.ImageURL != "channel-url" || got.Title != "Sub" {
		t.Errorf("channel badge should win, got %+v", got)
	}
	if got := c.Resolve("moderator", "1"); got.ImageURL != "mod-url" {
		t.Errorf("global badge expected, got %+v", got)
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestBadgeCache_Fallback(t *testing.T) {
	c := NewBadgeCache()
	got := c.Resolve("1234", "1")
	if got.ImageURL != BadgeURL("1234", "1") {
		t.Errorf("fallback URL = %q", got.ImageURL)
	}
	if got.Title != "1234" {
		t.Errorf("fallback title = %q", got.Title)
	}
}

func TestBadgeCache_ResolveAllSorted(t *testing.T) {
	c := NewBadgeCache()
	got := c.ResolveAll(map[string]string{"vip": "1", "broadcaster": "1", "moderator": "1"})
	var ids []string
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	if strings.Join(ids, ",") != "broadcaster,moderator,vip" {
		t.Errorf("ResolveAll order = %v", ids)
	}
	if c.ResolveAll(nil) != nil {
		t.Error("nil map should resolve to nil")
	}
}

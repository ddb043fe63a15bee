package bridge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
)

const raidScenario = `
name: raid
description: a raid lands mid-stream
steps:
  - chat: {user: Kappa, message: "hello 🎉", color: "#9146FF", badges: [{id: moderator, version: "1"}, {id: vip}]}
  - wait: 10ms
  - follow: {user: NewFriend, source: youtube}
  - donation: {user: BigSpender, amount: 5.1, message: gg}
  - subscription: {user: Gifter, tier: "2", gift: true}
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(raidScenario))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "raid" || len(s.Steps) != 5 {
		t.Fatalf("scenario = %+v", s)
	}
	if s.Duration() != 10*time.Millisecond {
		t.Errorf("Duration = %v", s.Duration())
	}

	ev, ok := s.Steps[0].Event(time.Now())
	if !ok {
		t.Fatal("chat step should produce an event")
	}
	chat := ev.(ChatMessageEvent)
	if len(chat.Badges) != 2 || chat.Badges[1].Version != "1" {
		t.Errorf("badges = %+v", chat.Badges)
	}
	if !strings.HasSuffix(chat.Badges[0].ImageURL, "/badges/v1/moderator/1/1") {
		t.Errorf("badge url = %s", chat.Badges[0].ImageURL)
	}

	if _, ok := s.Steps[1].Event(time.Now()); ok {
		t.Error("wait step should not produce an event")
	}
	follow, _ := s.Steps[2].Event(time.Now())
	if follow.(FollowEvent).Source != feed.SourceYouTube {
		t.Error("source should be parsed")
	}
}

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"missing name", "steps: [{follow: {user: a}}]", "name"},
		{"no steps", "name: x", "steps"},
		{"two actions", "name: x\nsteps: [{follow: {user: a}, wait: 1s}]", "steps[0]"},
		{"empty step", "name: x\nsteps: [{}]", "steps[0]"},
		{"bad wait", "name: x\nsteps: [{wait: soon}]", "steps[0].wait"},
		{"negative donation", "name: x\nsteps: [{donation: {user: a, amount: -2}}]", "steps[0].donation.amount"},
		{"chat without user", "name: x\nsteps: [{chat: {message: hi}}]", "steps[0].chat.user"},
		{"loop without wait", "name: x\nloop: true\nsteps: [{follow: {user: a}}]", "loop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %s, want %s", verr.Field, tt.field)
			}
		})
	}
}

func TestParseScenario_BadYAML(t *testing.T) {
	if _, err := ParseScenario([]byte("name: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raid.yaml")
	if err := os.WriteFile(path, []byte(raidScenario), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err != nil {
		t.Fatal(err)
	}

	_, err := LoadScenario(filepath.Join(dir, "missing.yaml"))
	if !pErrors.Is(err, pErrors.KindIO) {
		t.Errorf("missing file should be an IO error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("steps: []"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(bad); !pErrors.Is(err, pErrors.KindInvalid) {
		t.Errorf("invalid scenario should be KindInvalid, got %v", err)
	}
}

func TestScenario_Play(t *testing.T) {
	s, err := ParseScenario([]byte(raidScenario))
	if err != nil {
		t.Fatal(err)
	}
	var kinds []EventKind
	if err := s.Play(context.Background(), func(ev Event) { kinds = append(kinds, ev.Kind()) }); err != nil {
		t.Fatal(err)
	}
	want := []EventKind{KindChatMessage, KindFollow, KindDonation, KindSubscription}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestScenario_PlayLoopStopsOnCancel(t *testing.T) {
	s, err := ParseScenario([]byte("name: loop\nloop: true\nsteps: [{follow: {user: a}}, {wait: 1ms}]"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	err = s.Play(ctx, func(Event) {
		count++
		if count == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Play = %v, want context.Canceled", err)
	}
	if count < 3 {
		t.Errorf("count = %d", count)
	}
}

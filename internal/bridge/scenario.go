package bridge

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
)

// Scenario is a scripted sequence of events, loaded from YAML, used to replay
// a stream deterministically with the mock bridge.
//
//	name: raid
//	loop: true
//	steps:
//	  - chat: {user: Kappa, message: "hello 🎉", color: "#9146FF"}
//	  - wait: 2s
//	  - donation: {user: BigSpender, amount: 5, message: "gg"}
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Loop        bool   `yaml:"loop"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single scenario action. Exactly one field must be set.
type Step struct {
	Wait         string            `yaml:"wait,omitempty"`
	Chat         *ChatStep         `yaml:"chat,omitempty"`
	Follow       *FollowStep       `yaml:"follow,omitempty"`
	Donation     *DonationStep     `yaml:"donation,omitempty"`
	Subscription *SubscriptionStep `yaml:"subscription,omitempty"`

	wait time.Duration
}

// ChatStep emits a chat message.
type ChatStep struct {
	User    string      `yaml:"user"`
	Message string      `yaml:"message"`
	Color   string      `yaml:"color"`
	Source  string      `yaml:"source"`
	Badges  []BadgeStep `yaml:"badges"`
}

// BadgeStep is a badge reference on a scripted chat message.
type BadgeStep struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

// FollowStep emits a follow.
type FollowStep struct {
	User   string `yaml:"user"`
	Source string `yaml:"source"`
}

// DonationStep emits a donation.
type DonationStep struct {
	User    string  `yaml:"user"`
	Amount  float64 `yaml:"amount"`
	Message string  `yaml:"message"`
	Source  string  `yaml:"source"`
}

// SubscriptionStep emits a subscription.
type SubscriptionStep struct {
	User    string `yaml:"user"`
	Tier    string `yaml:"tier"`
	Gift    bool   `yaml:"gift"`
	Message string `yaml:"message"`
	Source  string `yaml:"source"`
}

// ValidationError describes an invalid scenario field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pErrors.E(pErrors.Op("bridge.LoadScenario"), pErrors.KindIO, fmt.Sprintf("read %s", path), err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, pErrors.E(pErrors.Op("bridge.LoadScenario"), pErrors.KindInvalid, path, err)
	}
	return s, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step and resolves wait durations.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "scenario name is required"}
	}
	if len(s.Steps) == 0 {
		return &ValidationError{Field: "steps", Message: "at least one step is required"}
	}

	hasWait := false
	for i := range s.Steps {
		step := &s.Steps[i]
		field := fmt.Sprintf("steps[%d]", i)

		set := 0
		if step.Wait != "" {
			set++
		}
		for _, p := range []bool{step.Chat != nil, step.Follow != nil, step.Donation != nil, step.Subscription != nil} {
			if p {
				set++
			}
		}
		if set != 1 {
			return &ValidationError{Field: field, Message: "exactly one action is required per step"}
		}

		switch {
		case step.Wait != "":
			d, err := time.ParseDuration(step.Wait)
			if err != nil || d <= 0 {
				return &ValidationError{Field: field + ".wait", Message: fmt.Sprintf("invalid duration %q", step.Wait)}
			}
			step.wait = d
			hasWait = true
		case step.Chat != nil:
			if step.Chat.User == "" {
				return &ValidationError{Field: field + ".chat.user", Message: "user is required"}
			}
		case step.Follow != nil:
			if step.Follow.User == "" {
				return &ValidationError{Field: field + ".follow.user", Message: "user is required"}
			}
		case step.Donation != nil:
			if step.Donation.User == "" {
				return &ValidationError{Field: field + ".donation.user", Message: "user is required"}
			}
			if step.Donation.Amount < 0 {
				return &ValidationError{Field: field + ".donation.amount", Message: "amount must not be negative"}
			}
		case step.Subscription != nil:
			if step.Subscription.User == "" {
				return &ValidationError{Field: field + ".subscription.user", Message: "user is required"}
			}
		}
	}

	// A looping scenario without a wait would spin.
	if s.Loop && !hasWait {
		return &ValidationError{Field: "loop", Message: "looping scenarios need at least one wait step"}
	}
	return nil
}

// Duration is the total scripted wait time of one pass.
func (s *Scenario) Duration() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		total += step.wait
	}
	return total
}

// Event returns the event a non-wait step emits, stamped with now.
func (st Step) Event(now time.Time) (Event, bool) {
	switch {
	case st.Chat != nil:
		badges := make([]feed.Badge, 0, len(st.Chat.Badges))
		for _, b := range st.Chat.Badges {
			version := b.Version
			if version == "" {
				version = "1"
			}
			badges = append(badges, feed.Badge{ID: b.ID, Version: version, ImageURL: feed.BadgeURL(b.ID, version), Title: b.ID})
		}
		return ChatMessageEvent{
			User:    st.Chat.User,
			Color:   st.Chat.Color,
			Message: st.Chat.Message,
			Badges:  badges,
			Source:  feed.ParseSource(st.Chat.Source),
			Time:    now,
		}, true
	case st.Follow != nil:
		return FollowEvent{Username: st.Follow.User, Source: feed.ParseSource(st.Follow.Source), Time: now}, true
	case st.Donation != nil:
		return DonationEvent{
			Username: st.Donation.User,
			Amount:   st.Donation.Amount,
			Message:  st.Donation.Message,
			Source:   feed.ParseSource(st.Donation.Source),
			Time:     now,
		}, true
	case st.Subscription != nil:
		return SubscriptionEvent{
			Username: st.Subscription.User,
			Tier:     st.Subscription.Tier,
			Gift:     st.Subscription.Gift,
			Message:  st.Subscription.Message,
			Source:   feed.ParseSource(st.Subscription.Source),
			Time:     now,
		}, true
	}
	return nil, false
}

// Play runs the scenario, handing each event to publish, until it finishes or
// ctx is done. Looping scenarios only stop with ctx.
func (s *Scenario) Play(ctx context.Context, publish func(Event)) error {
	for {
		for _, step := range s.Steps {
			if step.wait > 0 {
				timer := time.NewTimer(step.wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
				continue
			}
			if ev, ok := step.Event(time.Now()); ok {
				publish(ev)
			}
		}
		if !s.Loop {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

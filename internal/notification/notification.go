// Package notification sends desktop notifications for viewer activity.
// It uses the beeep library on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/logger"
)

// AppName is the notification title.
const AppName = "streamchat"

type notifyFunc func(title, message string, icon any) error

var (
	mu       sync.Mutex
	notifier notifyFunc = beeep.Notify
)

// SetNotifier replaces the platform notifier. Used by tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores the platform notifier.
func ResetNotifier() {
	mu.Lock()
	defer mu.Unlock()
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)

	mu.Lock()
	fn := notifier
	mu.Unlock()

	// Empty icon lets beeep pick the platform default
	err := fn(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// Notable reports whether a notifies the streamer. Follows are too frequent
// to pop a desktop notification for.
func Notable(a feed.Activity) bool {
	switch a.Kind() {
	case feed.KindDonation, feed.KindSubscription:
		return true
	}
	return false
}

// ForActivity notifies about a donation or subscription. Other activities
// are ignored and report sent=false.
func ForActivity(a feed.Activity) (sent bool, err error) {
	if !Notable(a) {
		return false, nil
	}
	msg := feed.ActivityText(a)
	if extra := a.Message(); extra != "" {
		msg += "\n" + extra
	}
	return true, Send(AppName, msg)
}

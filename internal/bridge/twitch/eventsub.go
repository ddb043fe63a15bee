package twitch

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/logger"
)

// EventSubURL is the production EventSub websocket endpoint.
const EventSubURL = "wss://eventsub.wss.twitch.tv/ws"

const (
	defaultKeepalive = 10 * time.Second
	keepaliveGrace   = 5 * time.Second
	seenLimit        = 512
)

// Follow is a channel.follow notification.
type Follow struct {
	UserID     string    `json:"user_id"`
	UserLogin  string    `json:"user_login"`
	UserName   string    `json:"user_name"`
	FollowedAt time.Time `json:"followed_at"`
}

type wsMessage struct {
	Metadata struct {
		MessageID        string `json:"message_id"`
		MessageType      string `json:"message_type"`
		SubscriptionType string `json:"subscription_type"`
	} `json:"metadata"`
	Payload struct {
		Session *struct {
			ID                      string `json:"id"`
			Status                  string `json:"status"`
			KeepaliveTimeoutSeconds int    `json:"keepalive_timeout_seconds"`
			ReconnectURL            string `json:"reconnect_url"`
		} `json:"session"`
		Event json.RawMessage `json:"event"`
	} `json:"payload"`
}

// EventSub reads follow notifications from an EventSub websocket session. On
// the first welcome it registers a channel.follow subscription through Helix;
// reconnect messages move to the new URL without resubscribing.
type EventSub struct {
	URL           string
	Helix         *HelixClient
	BroadcasterID string
	ModeratorID   string
	OnFollow      func(Follow)
	Dialer        *websocket.Dialer

	mu        sync.Mutex
	conn      *websocket.Conn
	sessionID string
	keepalive time.Duration
	seen      map[string]struct{}
}

// SessionID returns the current session id, "" before the welcome.
func (es *EventSub) SessionID() string {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.sessionID
}

func (es *EventSub) dial(ctx context.Context, url string) (*websocket.Conn, error) {
	dialer := es.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: 30 * time.Second}
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, pErrors.E(pErrors.Op("eventsub.Dial"), pErrors.KindNetwork, url, err)
	}
	return conn, nil
}

// Run connects and processes messages until ctx is done or the connection
// fails.
func (es *EventSub) Run(ctx context.Context) error {
	url := es.URL
	if url == "" {
		url = EventSubURL
	}
	conn, err := es.dial(ctx, url)
	if err != nil {
		return err
	}
	es.setConn(conn)

	stop := context.AfterFunc(ctx, func() {
		es.mu.Lock()
		defer es.mu.Unlock()
		if es.conn != nil {
			_ = es.conn.Close()
		}
	})
	defer stop()
	defer es.closeConn()

	log := logger.WithComponent("eventsub")
	subscribed := false
	for {
		conn := es.currentConn()
		if err := conn.SetReadDeadline(time.Now().Add(es.readTimeout())); err != nil {
			return pErrors.E(pErrors.Op("eventsub.Run"), pErrors.KindNetwork, err)
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return pErrors.E(pErrors.Op("eventsub.Run"), pErrors.KindNetwork, "read", err)
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn("failed to parse eventsub message", "error", err)
			continue
		}
		if es.duplicate(msg.Metadata.MessageID) {
			continue
		}

		switch msg.Metadata.MessageType {
		case "session_welcome":
			if msg.Payload.Session == nil {
				continue
			}
			es.setSession(msg.Payload.Session.ID, msg.Payload.Session.KeepaliveTimeoutSeconds)
			log.Info("eventsub session started", "session", msg.Payload.Session.ID)
			if !subscribed {
				if err := es.subscribe(ctx, msg.Payload.Session.ID); err != nil {
					return err
				}
				subscribed = true
			}

		case "session_keepalive":
			// The read deadline is refreshed on every message.

		case "session_reconnect":
			if msg.Payload.Session == nil || msg.Payload.Session.ReconnectURL == "" {
				continue
			}
			log.Info("eventsub reconnect requested")
			next, err := es.dial(ctx, msg.Payload.Session.ReconnectURL)
			if err != nil {
				return err
			}
			old := es.swapConn(next)
			_ = old.Close()

		case "notification":
			if msg.Metadata.SubscriptionType != "channel.follow" {
				continue
			}
			var f Follow
			if err := json.Unmarshal(msg.Payload.Event, &f); err != nil {
				log.Warn("failed to parse follow event", "error", err)
				continue
			}
			if es.OnFollow != nil {
				es.OnFollow(f)
			}

		case "revocation":
			log.Warn("eventsub subscription revoked", "type", msg.Metadata.SubscriptionType)
		}
	}
}

func (es *EventSub) subscribe(ctx context.Context, sessionID string) error {
	if es.Helix == nil {
		return nil
	}
	moderator := es.ModeratorID
	if moderator == "" {
		moderator = es.BroadcasterID
	}
	req := FollowSubscription(sessionID, es.BroadcasterID, moderator)
	if err := es.Helix.CreateEventSubSubscription(ctx, req); err != nil {
		return pErrors.ListenerStartFailed("follow subscription", err)
	}
	return nil
}

func (es *EventSub) readTimeout() time.Duration {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.keepalive <= 0 {
		return defaultKeepalive + keepaliveGrace
	}
	return es.keepalive + keepaliveGrace
}

func (es *EventSub) setSession(id string, keepaliveSeconds int) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.sessionID = id
	if keepaliveSeconds > 0 {
		es.keepalive = time.Duration(keepaliveSeconds) * time.Second
	}
}

func (es *EventSub) duplicate(id string) bool {
	if id == "" {
		return false
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.seen == nil || len(es.seen) >= seenLimit {
		es.seen = make(map[string]struct{})
	}
	if _, ok := es.seen[id]; ok {
		return true
	}
	es.seen[id] = struct{}{}
	return false
}

func (es *EventSub) setConn(c *websocket.Conn) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.conn = c
}

func (es *EventSub) currentConn() *websocket.Conn {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.conn
}

func (es *EventSub) swapConn(c *websocket.Conn) *websocket.Conn {
	es.mu.Lock()
	defer es.mu.Unlock()
	old := es.conn
	es.conn = c
	return old
}

func (es *EventSub) closeConn() {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.conn != nil {
		_ = es.conn.Close()
		es.conn = nil
	}
}

package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func welcome(id string) string {
	return fmt.Sprintf(`{"metadata":{"message_id":"w-%s","message_type":"session_welcome"},
"payload":{"session":{"id":%q,"status":"connected","keepalive_timeout_seconds":10}}}`, id, id)
}

func followNotification(msgID, user string) string {
	return fmt.Sprintf(`{"metadata":{"message_id":%q,"message_type":"notification","subscription_type":"channel.follow"},
"payload":{"subscription":{"type":"channel.follow"},"event":{"user_id":"9","user_login":%q,"user_name":%q,"followed_at":"2026-01-01T00:00:00Z"}}}`,
		msgID, strings.ToLower(user), user)
}

func reconnect(url string) string {
	return fmt.Sprintf(`{"metadata":{"message_id":"r-1","message_type":"session_reconnect"},
"payload":{"session":{"id":"s1","status":"reconnecting","reconnect_url":%q}}}`, url)
}

// wsServer serves a scripted sequence of messages and then holds the
// connection open until the client goes away.
func wsServer(t *testing.T, script func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		script(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

type subscriptionRecorder struct {
	mu       sync.Mutex
	sessions []string
	created  chan struct{}
}

func newSubscriptionServer(t *testing.T, rec *subscriptionRecorder) *HelixClient {
	srv := newHelixServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req SubscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		rec.mu.Lock()
		rec.sessions = append(rec.sessions, req.Transport.SessionID)
		rec.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
		select {
		case rec.created <- struct{}{}:
		default:
		}
	})
	return testHelix(srv)
}

func TestEventSub_FollowNotifications(t *testing.T) {
	rec := &subscriptionRecorder{created: make(chan struct{}, 1)}
	hc := newSubscriptionServer(t, rec)

	srv := wsServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(welcome("s1")))
		select {
		case <-rec.created:
		case <-time.After(2 * time.Second):
			t.Error("subscription was never created")
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"metadata":{"message_id":"k1","message_type":"session_keepalive"},"payload":{}}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(followNotification("n1", "NewFriend")))
		// Redelivery of the same message must be ignored.
		_ = conn.WriteMessage(websocket.TextMessage, []byte(followNotification("n1", "NewFriend")))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(followNotification("n2", "Another")))
	})

	follows := make(chan Follow, 4)
	es := &EventSub{
		URL:           wsURL(srv),
		Helix:         hc,
		BroadcasterID: "42",
		OnFollow:      func(f Follow) { follows <- f },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- es.Run(ctx) }()

	var names []string
	for range 2 {
		select {
		case f := <-follows:
			names = append(names, f.UserName)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for follow")
		}
	}
	if strings.Join(names, ",") != "NewFriend,Another" {
		t.Errorf("follows = %v", names)
	}
	select {
	case f := <-follows:
		t.Errorf("duplicate follow delivered: %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
	if es.SessionID() != "s1" {
		t.Errorf("SessionID = %q", es.SessionID())
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.sessions) != 1 || rec.sessions[0] != "s1" {
		t.Errorf("subscriptions = %v", rec.sessions)
	}
}

func TestEventSub_Reconnect(t *testing.T) {
	rec := &subscriptionRecorder{created: make(chan struct{}, 1)}
	hc := newSubscriptionServer(t, rec)

	second := wsServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(welcome("s2")))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(followNotification("n9", "AfterMove")))
	})
	first := wsServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(welcome("s1")))
		<-rec.created
		_ = conn.WriteMessage(websocket.TextMessage, []byte(reconnect(wsURL(second))))
	})

	follows := make(chan Follow, 1)
	es := &EventSub{URL: wsURL(first), Helix: hc, BroadcasterID: "42", OnFollow: func(f Follow) { follows <- f }}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = es.Run(ctx) }()

	select {
	case f := <-follows:
		if f.UserName != "AfterMove" {
			t.Errorf("follow = %+v", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no follow after reconnect")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.sessions) != 1 {
		t.Errorf("reconnect should not resubscribe, got %v", rec.sessions)
	}
}

func TestEventSub_DialFailure(t *testing.T) {
	es := &EventSub{URL: "ws://127.0.0.1:1/ws"}
	if err := es.Run(context.Background()); err == nil {
		t.Error("expected dial error")
	}
}

// Package twitch is the Twitch implementation of the bridge: chat over IRC,
// follows over an EventSub websocket, and badge metadata over Helix.
package twitch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/feed"
	"github.com/zhubert/streamchat/internal/logger"
)

// HelixBaseURL is the production Helix API root.
const HelixBaseURL = "https://api.twitch.tv/helix"

// HelixClient is a minimal Helix client authenticated with a user access
// token.
type HelixClient struct {
	BaseURL  string
	ClientID string
	HTTP     *http.Client
}

// NewHelixClient returns a client whose requests carry accessToken as a
// bearer token.
func NewHelixClient(clientID, accessToken string) *HelixClient {
	// IRC tokens are often stored with the "oauth:" prefix; Helix wants the bare token
	accessToken = strings.TrimPrefix(accessToken, "oauth:")
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return &HelixClient{
		BaseURL:  HelixBaseURL,
		ClientID: clientID,
		HTTP:     oauth2.NewClient(context.Background(), ts),
	}
}

func (hc *HelixClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := hc.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return pErrors.E(pErrors.Op("helix."+method), pErrors.KindInvalid, path, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return pErrors.E(pErrors.Op("helix."+method), pErrors.KindInvalid, path, err)
	}
	req.Header.Set("Client-Id", hc.ClientID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.HTTP.Do(req)
	if err != nil {
		return pErrors.E(pErrors.Op("helix."+method), pErrors.KindNetwork, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WithComponent("helix").Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pErrors.HelixRequestFailed(path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pErrors.E(pErrors.Op("helix."+method), pErrors.KindInvalid, "decode "+path, err)
	}
	return nil
}

type badgeResponse struct {
	Data []struct {
		SetID    string `json:"set_id"`
		Versions []struct {
			ID         string `json:"id"`
			ImageURL1x string `json:"image_url_1x"`
			Title      string `json:"title"`
		} `json:"versions"`
	} `json:"data"`
}

func (r badgeResponse) sets() []feed.BadgeSet {
	out := make([]feed.BadgeSet, 0, len(r.Data))
	for _, d := range r.Data {
		set := feed.BadgeSet{SetID: d.SetID}
		for _, v := range d.Versions {
			set.Versions = append(set.Versions, feed.BadgeVersion{ID: v.ID, ImageURL1x: v.ImageURL1x, Title: v.Title})
		}
		out = append(out, set)
	}
	return out
}

// GlobalBadges lists the global chat badges.
func (hc *HelixClient) GlobalBadges(ctx context.Context) ([]feed.BadgeSet, error) {
	var body badgeResponse
	if err := hc.do(ctx, http.MethodGet, "/chat/badges/global", nil, nil, &body); err != nil {
		return nil, err
	}
	return body.sets(), nil
}

// ChannelBadges lists the custom badges of a channel.
func (hc *HelixClient) ChannelBadges(ctx context.Context, broadcasterID string) ([]feed.BadgeSet, error) {
	if broadcasterID == "" {
		return nil, pErrors.CredentialMissing("TWITCH_BROADCASTER_ID")
	}
	var body badgeResponse
	q := url.Values{"broadcaster_id": {broadcasterID}}
	if err := hc.do(ctx, http.MethodGet, "/chat/badges", q, nil, &body); err != nil {
		return nil, err
	}
	return body.sets(), nil
}

// LoadBadges fills cache with global and channel badges and returns the
// number of sets loaded.
func (hc *HelixClient) LoadBadges(ctx context.Context, cache *feed.BadgeCache, broadcasterID string) (int, error) {
	global, err := hc.GlobalBadges(ctx)
	if err != nil {
		return 0, err
	}
	channel, err := hc.ChannelBadges(ctx, broadcasterID)
	if err != nil {
		return 0, err
	}
	cache.AddGlobal(global)
	cache.AddChannel(channel)
	return len(global) + len(channel), nil
}

// User is a Helix user record.
type User struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

// GetUser resolves a login name. An empty login returns the token's owner.
func (hc *HelixClient) GetUser(ctx context.Context, login string) (User, error) {
	var q url.Values
	if login != "" {
		q = url.Values{"login": {login}}
	}
	var body struct {
		Data []User `json:"data"`
	}
	if err := hc.do(ctx, http.MethodGet, "/users", q, nil, &body); err != nil {
		return User{}, err
	}
	if len(body.Data) == 0 {
		return User{}, pErrors.E(pErrors.Op("helix.GetUser"), pErrors.KindNotFound, fmt.Sprintf("user %q not found", login))
	}
	return body.Data[0], nil
}

// SubscriptionRequest creates an EventSub subscription on a websocket session.
type SubscriptionRequest struct {
	Type      string            `json:"type"`
	Version   string            `json:"version"`
	Condition map[string]string `json:"condition"`
	Transport struct {
		Method    string `json:"method"`
		SessionID string `json:"session_id"`
	} `json:"transport"`
}

// CreateEventSubSubscription registers req with Helix.
func (hc *HelixClient) CreateEventSubSubscription(ctx context.Context, req SubscriptionRequest) error {
	return hc.do(ctx, http.MethodPost, "/eventsub/subscriptions", nil, req, nil)
}

// FollowSubscription is the channel.follow v2 request for a websocket session.
func FollowSubscription(sessionID, broadcasterID, moderatorID string) SubscriptionRequest {
	req := SubscriptionRequest{
		Type:    "channel.follow",
		Version: "2",
		Condition: map[string]string{
			"broadcaster_user_id": broadcasterID,
			"moderator_user_id":   moderatorID,
		},
	}
	req.Transport.Method = "websocket"
	req.Transport.SessionID = sessionID
	return req
}

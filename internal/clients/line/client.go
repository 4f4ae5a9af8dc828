// Package line talks to the LINE Messaging API and parses its webhook
// envelopes.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const (
	defaultEndpoint = "https://api.line.me"
	replyPath       = "/v2/bot/message/reply"
	profilePath     = "/v2/bot/profile/"

	messageTypeText = "text"
)

type tokenGetter interface {
	Token() string
}

type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

func New(getter tokenGetter) *Client {
	return NewWithEndpoint(getter, defaultEndpoint)
}

// NewWithEndpoint points the client at a non-default API host. Tests
// use it to talk to a local server.
func NewWithEndpoint(getter tokenGetter, endpoint string) *Client {
	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		token:      getter.Token(),
	}
}

type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// ReplyMessage sends one text message to a reply token. A token can be
// used once; the caller owns the one-reply-per-event rule.
func (c *Client) ReplyMessage(ctx context.Context, replyToken, text string) error {
	payload, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: messageTypeText, Text: text}},
	})
	if err != nil {
		return errors.Wrap(err, "marshalling reply")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+replyPath, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "reply message")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "reply message")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return errors.Errorf("reply message: status %d: %s", res.StatusCode, string(body))
	}
	return nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+profilePath+userID, nil)
	if err != nil {
		return Profile{}, errors.Wrap(err, "get profile")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Profile{}, errors.Wrap(err, "get profile")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Profile{}, errors.Errorf("get profile: status %d", res.StatusCode)
	}

	var profile Profile
	if err = json.NewDecoder(res.Body).Decode(&profile); err != nil {
		return Profile{}, errors.Wrap(err, "unmarshalling profile")
	}
	return profile, nil
}

package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// SignatureHeader carries base64(HMAC-SHA256(channel secret, body)).
const SignatureHeader = "X-Line-Signature"

var ErrInvalidSignature = errors.New("invalid signature")

const (
	EventTypeMessage  = "message"
	EventTypeFollow   = "follow"
	EventTypeUnfollow = "unfollow"

	MessageTypeText = "text"
)

type Webhook struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Timestamp  int64   `json:"timestamp"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
}

type Source struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

func ValidateSignature(secret, signature string, body []byte) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}

// ParseRequest verifies the request signature against the channel
// secret and returns the envelope's events. ErrInvalidSignature means
// the body must not be acted on.
func ParseRequest(secret string, r *http.Request) ([]Event, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading webhook body")
	}
	if !ValidateSignature(secret, r.Header.Get(SignatureHeader), body) {
		return nil, ErrInvalidSignature
	}

	var webhook Webhook
	if err = json.Unmarshal(body, &webhook); err != nil {
		return nil, errors.Wrap(err, "unmarshalling webhook")
	}
	return webhook.Events, nil
}

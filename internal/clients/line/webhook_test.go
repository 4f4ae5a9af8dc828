package line

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "channel-secret"

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookRequest(body []byte, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader(body))
	req.Header.Set(SignatureHeader, signature)
	return req
}

func Test_OnValidSignature_ShouldReturnEvents(t *testing.T) {
	body := []byte(`{
		"destination": "xxx",
		"events": [{
			"type": "message",
			"replyToken": "reply-token",
			"source": {"type": "user", "userId": "U123"},
			"message": {"id": "1", "type": "text", "text": "合計"}
		}]
	}`)

	events, err := ParseRequest(testSecret, webhookRequest(body, sign(testSecret, body)))

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeMessage, events[0].Type)
	assert.Equal(t, "reply-token", events[0].ReplyToken)
	assert.Equal(t, "U123", events[0].Source.UserID)
	assert.Equal(t, "合計", events[0].Message.Text)
}

func Test_OnWrongSecret_ShouldFailWithInvalidSignature(t *testing.T) {
	body := []byte(`{"events": []}`)

	_, err := ParseRequest(testSecret, webhookRequest(body, sign("other-secret", body)))

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func Test_OnMissingSignature_ShouldFailWithInvalidSignature(t *testing.T) {
	body := []byte(`{"events": []}`)

	_, err := ParseRequest(testSecret, webhookRequest(body, ""))

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func Test_OnTamperedBody_ShouldFailWithInvalidSignature(t *testing.T) {
	body := []byte(`{"events": []}`)
	tampered := []byte(`{"events": [{"type": "follow"}]}`)

	_, err := ParseRequest(testSecret, webhookRequest(tampered, sign(testSecret, body)))

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func Test_ValidateSignature_OnGarbageBase64_ShouldFail(t *testing.T) {
	assert.False(t, ValidateSignature(testSecret, "%%%not-base64%%%", []byte("body")))
}

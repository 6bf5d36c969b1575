package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestValidSignature(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"PAY1"}}`)

	assert.True(t, ValidSignature(secret, body, sign(secret, body)))
	assert.False(t, ValidSignature(secret, body, sign("wrong_secret", body)))
	assert.False(t, ValidSignature(secret, body, ""))
	assert.False(t, ValidSignature(secret, []byte(`tampered`), sign(secret, body)))
}

func TestEventDecoding(t *testing.T) {
	var event Event
	err := json.Unmarshal([]byte(`{"event":"charge.success","data":{"reference":"PAY1","amount":5000}}`), &event)

	require.NoError(t, err)
	assert.Equal(t, EventChargeSuccess, event.Event)
	assert.Equal(t, "PAY1", event.Data.Reference)
}

package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// EventChargeSuccess is the only event type the backend acts on; everything
// else is acknowledged and ignored.
const EventChargeSuccess = "charge.success"

// SignatureHeader carries Paystack's HMAC of the raw request body.
const SignatureHeader = "x-paystack-signature"

// Event is the webhook envelope Paystack delivers.
type Event struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// ValidSignature checks a webhook signature header against the HMAC-SHA512 of
// the raw body keyed with the account's secret key.
func ValidSignature(secretKey string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

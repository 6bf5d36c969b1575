package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Message is an outbound notification.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Notifier delivers a message and returns the provider's delivery id. It is
// an interface so tests and deployments without an email provider can swap
// the transport.
type Notifier interface {
	Send(ctx context.Context, msg Message) (string, error)
}

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoNotifier sends email through the Brevo transactional API.
type BrevoNotifier struct {
	apiKey     string
	senderName string
	endpoint   string
	client     *http.Client
}

func NewBrevo(apiKey, senderName string) *BrevoNotifier {
	return &BrevoNotifier{
		apiKey:     apiKey,
		senderName: senderName,
		endpoint:   brevoEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	TextContent string              `json:"textContent,omitempty"`
	HTMLContent string              `json:"htmlContent,omitempty"`
}

func (n *BrevoNotifier) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" || !strings.Contains(msg.To, "@") {
		return "", fmt.Errorf("invalid recipient email: %q", msg.To)
	}

	recipientName := msg.To[:strings.Index(msg.To, "@")]
	payload := brevoPayload{
		Sender:      map[string]string{"name": n.senderName, "email": msg.From},
		To:          []map[string]string{{"email": msg.To, "name": recipientName}},
		Subject:     msg.Subject,
		TextContent: msg.Text,
		HTMLContent: msg.HTML,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", n.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("failed to send email via Brevo: %s", string(respBody))
	}

	var sent struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(respBody, &sent); err != nil {
		return "", fmt.Errorf("failed to decode Brevo response: %v", err)
	}

	return sent.MessageID, nil
}

// LogNotifier logs instead of delivering, for deployments with no email
// provider configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, msg Message) (string, error) {
	log.Printf("[notify] to=%s subject=%q (email not configured, not sent)", msg.To, msg.Subject)
	return "", nil
}

// Package line is a minimal LINE Messaging API client: webhook payload
// parsing with signature verification, message content download and text
// replies. Only what the receipt bot needs.
package line

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrInvalidSignature marks a webhook body whose X-Line-Signature does
// not match. Decode failures on a validly signed body are ordinary
// errors, not this sentinel.
var ErrInvalidSignature = errors.New("line: invalid signature")

const (
	defaultAPIBase  = "https://api.line.me"
	defaultDataBase = "https://api-data.line.me"

	// maxImageBytes bounds message content downloads.
	maxImageBytes = 20 << 20
)

// Event is one webhook event. Only image-message fields are mapped.
type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Message    Message `json:"message"`
}

type Message struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// IsImageMessage reports whether the event carries an image to process.
func (e Event) IsImageMessage() bool {
	return e.Type == "message" && e.Message.Type == "image"
}

type webhookBody struct {
	Events []Event `json:"events"`
}

// ValidateSignature checks the X-Line-Signature header against the raw
// request body using the channel secret.
func ValidateSignature(channelSecret, signature string, body []byte) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)

	return hmac.Equal(decoded, mac.Sum(nil))
}

// ParseWebhook verifies the signature and decodes the event list.
func ParseWebhook(channelSecret, signature string, body []byte) ([]Event, error) {
	if !ValidateSignature(channelSecret, signature, body) {
		return nil, ErrInvalidSignature
	}

	var wb webhookBody
	if err := json.Unmarshal(body, &wb); err != nil {
		return nil, fmt.Errorf("line: decode webhook: %w", err)
	}

	return wb.Events, nil
}

// Client calls the LINE Messaging API.
type Client struct {
	http     *http.Client
	apiBase  string
	dataBase string
	token    string
}

type Config struct {
	ChannelToken string
	APIBase      string // defaults to api.line.me
	DataBase     string // defaults to api-data.line.me
}

func New(cfg Config) *Client {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	dataBase := cfg.DataBase
	if dataBase == "" {
		dataBase = defaultDataBase
	}

	return &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		apiBase:  apiBase,
		dataBase: dataBase,
		token:    cfg.ChannelToken,
	}
}

// GetMessageContent downloads the binary content of a message (the
// uploaded receipt photo).
func (c *Client) GetMessageContent(ctx context.Context, messageID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/v2/bot/message/%s/content", c.dataBase, messageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("line: get content: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	return data, nil
}

// ReplyText sends one text message back on a reply token.
func (c *Client) ReplyText(ctx context.Context, replyToken, text string) error {
	payload := map[string]any{
		"replyToken": replyToken,
		"messages":   []map[string]any{{"type": "text", "text": text}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v2/bot/message/reply", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("line: reply: status %d: %s", resp.StatusCode, msg)
	}

	return nil
}

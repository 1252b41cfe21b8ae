// Package notify delivers best-effort purchase notifications.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier sends a short text message to an external channel.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// TelegramNotifier sends messages through the Telegram Bot API.
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

// NewTelegramNotifier creates a notifier. Returns nil when either the
// token or the chat id is unset, which disables notifications.
func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	if token == "" || chatID == "" {
		return nil
	}
	return &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		baseURL: "https://api.telegram.org",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify posts one sendMessage call. Errors are reported to the caller,
// who treats them as warnings only.
func (t *TelegramNotifier) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}

// Ensure TelegramNotifier implements Notifier
var _ Notifier = (*TelegramNotifier)(nil)

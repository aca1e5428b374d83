package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TelegramAlerter delivers reminder alerts via the Telegram Bot API, for
// users who want reminders to reach their phone as well as the desktop.
type TelegramAlerter struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

// NewTelegramAlerter creates a Telegram alert sink.
func NewTelegramAlerter(botToken, chatID string) *TelegramAlerter {
	return &TelegramAlerter{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  "https://api.telegram.org",
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type telegramSendRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Alert sends the reminder as a plain-text message to the configured chat.
func (t *TelegramAlerter) Alert(title, body string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	payload := telegramSendRequest{
		ChatID: t.chatID,
		Text:   title + "\n" + body,
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var tgResp telegramResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}

	if !tgResp.OK {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}

	return nil
}

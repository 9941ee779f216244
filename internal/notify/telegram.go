package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"bloomfundr-settlement/internal/utils"

	"github.com/joho/godotenv"
)

// TelegramAPIBase is overridden in tests.
var TelegramAPIBase = "https://api.telegram.org"

var httpClient = &http.Client{Timeout: 5 * time.Second}

type TelegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode,omitempty"`
}

func init() {
	_ = godotenv.Load()
}

func SendTelegramMessage(ctx context.Context, chatID, content string, markdown bool) error {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		return fmt.Errorf("missing TELEGRAM_BOT_TOKEN in env")
	}

	msg := TelegramMessage{ChatID: chatID, Text: content}
	if markdown {
		msg.Parse = "MarkdownV2"
	}
	body, _ := json.Marshal(msg)
	url := fmt.Sprintf("%s/bot%s/sendMessage", TelegramAPIBase, botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("telegram status %d: %s", resp.StatusCode, b)
		// A rejected request fails the same way every time.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return utils.Permanent(err)
		}
		return err
	}
	return nil
}

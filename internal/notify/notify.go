package notify

import (
	"context"
	"fmt"
	"time"

	"bloomfundr-settlement/internal/utils"
)

// Telegram delivery attempts per alert.
var (
	SendAttempts = 3
	SendInterval = time.Second
)

var levelIcons = map[string]string{
	"info":  "ℹ️",
	"warn":  "⚠️",
	"error": "🚨",
}

// Notify sends one alert to chatID. An empty chat id means alerts are not
// configured and is not an error.
func Notify(ctx context.Context, chatID, level, title, content string, markdown bool) error {
	if chatID == "" {
		return nil
	}
	icon := levelIcons[level]
	if icon == "" {
		icon = levelIcons["info"]
	}
	head := title
	if markdown {
		head = "*" + escapeMarkdown(title) + "*"
	}
	text := fmt.Sprintf("%s %s\n%s", icon, head, content)
	return utils.DoWithRetry(ctx, nil, SendAttempts, SendInterval, func() error {
		return SendTelegramMessage(ctx, chatID, text, markdown)
	})
}

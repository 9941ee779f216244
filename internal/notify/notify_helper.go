package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bloomfundr-settlement/internal/dto"
	"bloomfundr-settlement/internal/event"

	"github.com/sirupsen/logrus"
)

// AlertFunc delivers an operator alert.
type AlertFunc func(ctx context.Context, title, content string) error

// TelegramAlert alerts the chat returned by chatID at send time, so a chat id
// loaded after startup is picked up.
func TelegramAlert(chatID func() string) AlertFunc {
	return func(ctx context.Context, title, content string) error {
		return Notify(ctx, chatID(), "warn", title, content, true)
	}
}

// SettlementNotifier publishes the settlement event and alerts operators
// when a leg needs attention.
type SettlementNotifier struct {
	pub   event.Publisher
	alert AlertFunc
	log   *logrus.Logger
	now   func() time.Time
}

func NewSettlementNotifier(pub event.Publisher, alert AlertFunc, log *logrus.Logger) *SettlementNotifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SettlementNotifier{pub: pub, alert: alert, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (n *SettlementNotifier) SettlementCompleted(ctx context.Context, res *dto.SettlementResult) error {
	var errs []error
	if n.pub != nil {
		if err := n.pub.Publish(ctx, event.TopicSettlementCompleted, event.NewSettlementEvent(res, n.now())); err != nil {
			errs = append(errs, fmt.Errorf("publish settlement event: %w", err))
		}
	}
	if n.alert != nil && res.NeedsAttention() {
		if err := n.alert(ctx, "Settlement needs attention", FormatSettlementAlert(res, n.now())); err != nil {
			errs = append(errs, fmt.Errorf("send settlement alert: %w", err))
		}
	}
	return errors.Join(errs...)
}

// FormatSettlementAlert renders a MarkdownV2 body listing both legs.
func FormatSettlementAlert(res *dto.SettlementResult, at time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*Order:* %s \\(%s\\)\n", escapeMarkdown(res.OrderNumber), escapeMarkdown(res.OrderID)))
	sb.WriteString(fmt.Sprintf("*Mode:* %s\n", escapeMarkdown(string(res.Mode))))
	sb.WriteString(fmt.Sprintf("*Time:* %s\n", escapeMarkdown(at.Format("2006-01-02 15:04:05 UTC"))))
	for _, l := range res.Legs() {
		line := fmt.Sprintf("%s %s: %s %s", l.RecipientType, l.RecipientID, l.Amount.StringFixed(2), l.Status)
		if l.Error != "" {
			line += " - " + l.Error
		}
		sb.WriteString(escapeMarkdown(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// escapeMarkdown escapes Telegram MarkdownV2 special characters.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(s)
}

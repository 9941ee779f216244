package system

import (
	"context"
	"log"
)

// BotChatID is the telegram chat that receives settlement alerts.
var BotChatID string

// Config resolves startup-time settings from sys_config.
func Config(ctx context.Context, cs *ConfigSystem, chatKey string) {
	BotChatID = cs.Value(ctx, chatKey)
	log.Printf("[SYSTEM] telegram alert chat id: %q", BotChatID)
}

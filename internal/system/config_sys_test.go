package system

import (
	"context"
	"fmt"
	"testing"

	mainmodel "bloomfundr-settlement/internal/model/main"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&mainmodel.SysConfig{}))
	return db
}

func TestGetConfigCacheByConfigKey_WithoutRedis(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&mainmodel.SysConfig{
		ConfigName:  "alerts",
		ConfigKey:   "settlement.telegram.notify.group",
		ConfigValue: "-100123",
	}).Error)

	cs := NewConfigSystem(db, nil)
	cfg, err := cs.GetConfigCacheByConfigKey(context.Background(), "settlement.telegram.notify.group")
	require.NoError(t, err)
	assert.Equal(t, "-100123", cfg.Value)
	assert.True(t, cfg.Set())
}

func TestValue_MissingKeyIsEmpty(t *testing.T) {
	cs := NewConfigSystem(newTestDB(t), nil)
	assert.Equal(t, "", cs.Value(context.Background(), "nope"))
}

func TestConfig_SetsBotChatID(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&mainmodel.SysConfig{ConfigKey: "chat", ConfigValue: "42"}).Error)

	Config(context.Background(), NewConfigSystem(db, nil), "chat")
	assert.Equal(t, "42", BotChatID)
}

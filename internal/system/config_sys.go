package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bloomfundr-settlement/internal/dto"
	mainmodel "bloomfundr-settlement/internal/model/main"
	rediskey "bloomfundr-settlement/internal/types/redis-key"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ConfigSystem reads sys_config rows through a redis hash cache. A nil
// redis client disables the cache.
type ConfigSystem struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewConfigSystem(db *gorm.DB, rdb *redis.Client) *ConfigSystem {
	return &ConfigSystem{db: db, rdb: rdb}
}

// GetConfigByConfigKey reads the row straight from the database. A missing
// key yields a zero response and no error.
func (s *ConfigSystem) GetConfigByConfigKey(ctx context.Context, configKey string) (dto.SysConfigEntry, error) {
	var row mainmodel.SysConfig
	err := s.db.WithContext(ctx).Where("config_key = ?", configKey).Last(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SysConfigEntry{}, nil
	}
	if err != nil {
		return dto.SysConfigEntry{}, fmt.Errorf("query sys_config %s: %w", configKey, err)
	}
	return dto.SysConfigEntry{
		ID:     row.ConfigId,
		Key:    row.ConfigKey,
		Value:  row.ConfigValue,
		Type:   row.ConfigType,
		Remark: row.Remark,
	}, nil
}

// GetConfigCacheByConfigKey serves from redis when possible and fills the
// cache on a database hit.
func (s *ConfigSystem) GetConfigCacheByConfigKey(ctx context.Context, configKey string) (dto.SysConfigEntry, error) {
	var cfg dto.SysConfigEntry

	if s.rdb != nil {
		if cached, _ := s.rdb.HGet(ctx, rediskey.SysConfigKey(), configKey).Result(); cached != "" {
			if err := json.Unmarshal([]byte(cached), &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := s.GetConfigByConfigKey(ctx, configKey)
	if err != nil {
		return cfg, err
	}
	if cfg.Set() && s.rdb != nil {
		b, _ := json.Marshal(&cfg)
		s.rdb.HSet(ctx, rediskey.SysConfigKey(), configKey, string(b))
	}
	return cfg, nil
}

// Value returns just the config value, empty when unset.
func (s *ConfigSystem) Value(ctx context.Context, configKey string) string {
	cfg, err := s.GetConfigCacheByConfigKey(ctx, configKey)
	if err != nil {
		return ""
	}
	return cfg.Value
}

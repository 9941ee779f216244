package health

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateStore persists success rates by key. ok is false when nothing is stored.
type RateStore interface {
	Get(ctx context.Context, key string) (rate float64, ok bool, err error)
	Set(ctx context.Context, key string, rate float64, ttl time.Duration) error
}

// RailTracker keeps a rolling transfer success rate per rail. It only
// reports; a degraded rail still receives transfers.
type RailTracker struct {
	Store     RateStore
	Strategy  SuccessRateStrategy
	Threshold float64
	TTL       time.Duration
	Prefix    string
}

// RailStatus is what /healthz shows for one rail.
type RailStatus struct {
	Rail        string  `json:"rail"`
	SuccessRate float64 `json:"successRate"`
	Degraded    bool    `json:"degraded"`
}

func NewRailTracker(store RateStore, prefix string) *RailTracker {
	return &RailTracker{
		Store:     store,
		Strategy:  EWMAStrategy{Alpha: 0.1},
		Threshold: 60,
		TTL:       24 * time.Hour,
		Prefix:    prefix,
	}
}

func (t *RailTracker) key(rail string) string {
	return fmt.Sprintf("%s:rail:success_rate:%s", t.Prefix, rail)
}

// Observe records one transfer outcome for rail.
func (t *RailTracker) Observe(ctx context.Context, rail string, success bool) error {
	current, ok, err := t.Store.Get(ctx, t.key(rail))
	if err != nil {
		return err
	}
	if !ok {
		current = 100
	}
	return t.Store.Set(ctx, t.key(rail), t.Strategy.Update(current, success), t.TTL)
}

func (t *RailTracker) Status(ctx context.Context, rail string) (RailStatus, error) {
	rate, ok, err := t.Store.Get(ctx, t.key(rail))
	if err != nil {
		return RailStatus{Rail: rail}, err
	}
	if !ok {
		rate = 100
	}
	return RailStatus{Rail: rail, SuccessRate: rate, Degraded: rate < t.Threshold}, nil
}

type RedisRateStore struct {
	Redis *redis.Client
}

func (s RedisRateStore) Get(ctx context.Context, key string) (float64, bool, error) {
	rate, err := s.Redis.Get(ctx, key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get %s: %w", key, err)
	}
	return rate, true, nil
}

func (s RedisRateStore) Set(ctx context.Context, key string, rate float64, ttl time.Duration) error {
	if err := s.Redis.Set(ctx, key, strconv.FormatFloat(rate, 'f', 4, 64), ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// MemoryRateStore is used when Redis is not configured. Entries never expire.
type MemoryRateStore struct {
	mu    sync.Mutex
	rates map[string]float64
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{rates: map[string]float64{}}
}

func (s *MemoryRateStore) Get(ctx context.Context, key string) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rate, ok := s.rates[key]
	return rate, ok, nil
}

func (s *MemoryRateStore) Set(ctx context.Context, key string, rate float64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[key] = rate
	return nil
}

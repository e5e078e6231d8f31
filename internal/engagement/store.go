// Package engagement counts how prospects interact with the proposal:
// page opens, panels viewed and ROI simulations run.
package engagement

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

// Event names recorded by the proposal handlers.
const (
	EventPageView      = "page_view"
	EventROISimulation = "roi_simulation"
	EventLeadCreated   = "lead_created"
)

// ModalOpen returns the event recorded when a prospect opens a panel.
func ModalOpen(kind string) string {
	return "modal_open:" + kind
}

// Store persists engagement counters.
type Store interface {
	Incr(ctx context.Context, event string) (int64, error)
	Snapshot(ctx context.Context) (map[string]int64, error)
}

const redisKey = "proposal:engagement"

// RedisStore keeps counters in a single Redis hash so they survive restarts
// and are shared across replicas.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("engagement: redis client required")
	}
	return &RedisStore{redis: client}
}

func (s *RedisStore) Incr(ctx context.Context, event string) (int64, error) {
	n, err := s.redis.HIncrBy(ctx, redisKey, event, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("engagement: incr %s: %w", event, err)
	}
	return n, nil
}

func (s *RedisStore) Snapshot(ctx context.Context) (map[string]int64, error) {
	raw, err := s.redis.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("engagement: snapshot: %w", err)
	}
	out := make(map[string]int64, len(raw))
	for event, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("engagement: parse %s: %w", event, err)
		}
		out[event] = n
	}
	return out, nil
}

// MemoryStore is the single-process fallback used when Redis is not configured.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]int64)}
}

func (s *MemoryStore) Incr(_ context.Context, event string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[event]++
	return s.counts[event], nil
}

func (s *MemoryStore) Snapshot(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out, nil
}

// Record increments event and only logs failures; counters never block a page.
func Record(ctx context.Context, store Store, logger *logging.Logger, event string) {
	if store == nil {
		return
	}
	if _, err := store.Incr(ctx, event); err != nil && logger != nil {
		logger.Warn("failed to record engagement", "event", event, "error", err)
	}
}

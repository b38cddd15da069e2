package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"smartexam_backend/internal/model"
	"smartexam_backend/pkg/docstore"
	"smartexam_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AttemptSessionRepository keeps in-progress attempts. Sessions expire after
// a TTL; an expired attempt behaves as never started.
type AttemptSessionRepository interface {
	// Get returns nil without error when no session exists.
	Get(ctx context.Context, key model.AttemptKey) (*model.Attempt, error)
	Save(ctx context.Context, attempt *model.Attempt) error
	Delete(ctx context.Context, key model.AttemptKey) error
}

type memorySession struct {
	data      []byte
	expiresAt time.Time
}

// MemoryAttemptSessionRepository stores sessions in process memory. Stored
// attempts are serialized so callers never share state with the repository.
type MemoryAttemptSessionRepository struct {
	TTL time.Duration

	mu       sync.Mutex
	sessions map[model.AttemptKey]memorySession
	cron     *cron.Cron
	now      func() time.Time
}

func NewMemoryAttemptSessionRepository(ttl time.Duration) *MemoryAttemptSessionRepository {
	return &MemoryAttemptSessionRepository{
		TTL:      ttl,
		sessions: map[model.AttemptKey]memorySession{},
		now:      time.Now,
	}
}

// StartSweeper drops expired sessions every minute until StopSweeper.
func (r *MemoryAttemptSessionRepository) StartSweeper() error {
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() {
		if n := r.Sweep(); n > 0 {
			logger.Log.Debug("Expired attempt sessions removed", zap.Int("count", n))
		}
	}); err != nil {
		return err
	}
	c.Start()
	r.cron = c
	return nil
}

func (r *MemoryAttemptSessionRepository) StopSweeper() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

// Sweep removes expired sessions and reports how many were removed.
func (r *MemoryAttemptSessionRepository) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, k)
			n++
		}
	}
	return n
}

func (r *MemoryAttemptSessionRepository) Get(ctx context.Context, key model.AttemptKey) (*model.Attempt, error) {
	r.mu.Lock()
	s, ok := r.sessions[key]
	if ok && r.expired(s, r.now()) {
		delete(r.sessions, key)
		ok = false
	}
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var attempt model.Attempt
	if err := json.Unmarshal(s.data, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *MemoryAttemptSessionRepository) Save(ctx context.Context, attempt *model.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	s := memorySession{data: data}
	if r.TTL > 0 {
		s.expiresAt = r.now().Add(r.TTL)
	}
	r.mu.Lock()
	r.sessions[attempt.AttemptKey] = s
	r.mu.Unlock()
	return nil
}

func (r *MemoryAttemptSessionRepository) Delete(ctx context.Context, key model.AttemptKey) error {
	r.mu.Lock()
	delete(r.sessions, key)
	r.mu.Unlock()
	return nil
}

func (r *MemoryAttemptSessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *MemoryAttemptSessionRepository) expired(s memorySession, now time.Time) bool {
	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

// RedisAttemptSessionRepository stores each session as a JSON string with a
// TTL so sessions survive restarts and are shared across instances.
type RedisAttemptSessionRepository struct {
	RDB    *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisAttemptSessionRepository(rdb *redis.Client, prefix string, ttl time.Duration) *RedisAttemptSessionRepository {
	return &RedisAttemptSessionRepository{RDB: rdb, Prefix: prefix, TTL: ttl}
}

func (r *RedisAttemptSessionRepository) key(k model.AttemptKey) string {
	return r.Prefix + "attempt:" + docstore.Key(k.StudentID) + ":" + docstore.Key(k.BatchID) + ":" + docstore.Key(k.SubjectID)
}

func (r *RedisAttemptSessionRepository) Get(ctx context.Context, key model.AttemptKey) (*model.Attempt, error) {
	data, err := r.RDB.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get session", err)
	}

	var attempt model.Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *RedisAttemptSessionRepository) Save(ctx context.Context, attempt *model.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return storeErr("save session", r.RDB.Set(ctx, r.key(attempt.AttemptKey), data, r.TTL).Err())
}

func (r *RedisAttemptSessionRepository) Delete(ctx context.Context, key model.AttemptKey) error {
	return storeErr("delete session", r.RDB.Del(ctx, r.key(key)).Err())
}

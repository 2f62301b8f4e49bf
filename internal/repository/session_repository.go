package repository

import (
	"calibration_quiz/internal/util"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Session is the server-side state behind a session cookie.
type Session struct {
	IsAuthenticated bool      `json:"is_authenticated"`
	Username        string    `json:"username"`
	CreatedAt       time.Time `json:"created_at"`
}

type SessionRepository interface {
	Save(ctx context.Context, id string, s *Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// NewSessionRepository picks redis when a client is configured, memory otherwise.
func NewSessionRepository(rdb *redis.Client) SessionRepository {
	if rdb == nil {
		return NewMemorySessionRepository()
	}
	return NewRedisSessionRepository(rdb)
}

type RedisSessionRepository struct {
	Redis  *redis.Client
	prefix string
}

func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{Redis: rdb, prefix: "calibration:session:"}
}

func (r *RedisSessionRepository) key(id string) string {
	return r.prefix + id
}

func (r *RedisSessionRepository) Save(ctx context.Context, id string, s *Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, r.key(id), data, ttl).Err()
}

func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*Session, error) {
	data, err := r.Redis.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.Redis.Del(ctx, r.key(id)).Err()
}

type memorySession struct {
	session   Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process. Expired entries are
// dropped lazily on lookup.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Save(_ context.Context, id string, s *Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = memorySession{session: *s, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *MemorySessionRepository) Find(_ context.Context, id string) (*Session, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	if !r.now().Before(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, util.ErrSessionNotFound
	}
	s := entry.session
	return &s, nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

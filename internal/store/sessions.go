package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend names accepted by NewSessions.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"

	defaultRedisURL = "redis://localhost:6379/0"
)

// SessionConfig selects and configures a backend.
type SessionConfig struct {
	Backend  string
	Dir      string
	TTL      time.Duration
	RedisURL string
}

// Sessions opens per-session stores on one shared backend.
type Sessions struct {
	backend string
	dir     string
	ttl     time.Duration
	redis   *redis.Client

	mu     sync.Mutex
	memory map[string]*MemoryStore
}

// NewSessions validates cfg and connects the backend lazily (Redis dials on first use).
func NewSessions(cfg SessionConfig) (*Sessions, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendMemory
	}
	s := &Sessions{backend: backend, dir: cfg.Dir, ttl: cfg.TTL}

	switch backend {
	case BackendMemory:
		s.memory = make(map[string]*MemoryStore)
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file session backend requires a directory")
		}
	case BackendRedis:
		url := cfg.RedisURL
		if url == "" {
			url = defaultRedisURL
		}
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		s.redis = redis.NewClient(opts)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
	return s, nil
}

// NewRedisSessions wraps an existing client (tests, shared pools).
func NewRedisSessions(client *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{backend: BackendRedis, redis: client, ttl: ttl}
}

// Backend reports the configured backend name.
func (s *Sessions) Backend() string {
	return s.backend
}

// Open returns the store for session id.
func (s *Sessions) Open(id string) (Store, error) {
	if !ValidSessionID(id) {
		return nil, ErrInvalidSession
	}
	switch s.backend {
	case BackendFile:
		return NewFSStore(s.dir, id)
	case BackendRedis:
		return NewRedisStore(s.redis, id, s.ttl)
	default:
		s.mu.Lock()
		defer s.mu.Unlock()
		st, ok := s.memory[id]
		if !ok {
			st = NewMemoryStore()
			s.memory[id] = st
		}
		return st, nil
	}
}

// Ping checks backend reachability; only Redis can be down.
func (s *Sessions) Ping(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Ping(ctx).Err()
}

// Close releases backend connections.
func (s *Sessions) Close() error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Close()
}

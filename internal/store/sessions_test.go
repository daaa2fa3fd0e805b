package store

import (
	"context"
	"errors"
	"testing"
)

func TestSessionsMemoryReusesStorePerID(t *testing.T) {
	s, err := NewSessions(SessionConfig{Backend: "memory"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	a, _ := s.Open("abc")
	b, _ := s.Open("abc")
	c, _ := s.Open("other")
	if a != b {
		t.Fatalf("expected same store for same id")
	}
	_ = a.Set(context.Background(), "theme", "dark")
	if _, err := c.Get(context.Background(), "theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected sessions isolated, got %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("memory ping should succeed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestSessionsFileBackend(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSessions(SessionConfig{Backend: "FILE", Dir: dir})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Backend() != BackendFile {
		t.Fatalf("expected normalized backend, got %s", s.Backend())
	}
	st, err := s.Open("default")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := st.(*FSStore); !ok {
		t.Fatalf("expected FSStore, got %T", st)
	}
}

func TestSessionsRejectsBadConfig(t *testing.T) {
	if _, err := NewSessions(SessionConfig{Backend: "file"}); err == nil {
		t.Fatalf("expected error for file backend without dir")
	}
	if _, err := NewSessions(SessionConfig{Backend: "etcd"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := NewSessions(SessionConfig{Backend: "redis", RedisURL: "::bad"}); err == nil {
		t.Fatalf("expected error for bad redis url")
	}
}

func TestSessionsRedisParsesURLWithoutDialing(t *testing.T) {
	s, err := NewSessions(SessionConfig{Backend: "redis", RedisURL: "redis://localhost:6399/2"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer s.Close()
	st, err := s.Open("abc")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := st.(*RedisStore); !ok {
		t.Fatalf("expected RedisStore, got %T", st)
	}
}

func TestSessionsOpenRejectsInvalidID(t *testing.T) {
	s, _ := NewSessions(SessionConfig{})
	if _, err := s.Open("bad id"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFSStoreContract(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), "default")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	exerciseStore(t, s)
}

func TestFSStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, _ := NewFSStore(dir, "cli")
	if err := first.Set(context.Background(), "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}

	second, _ := NewFSStore(dir, "cli")
	if got, err := second.Get(context.Background(), "theme"); err != nil || got != "dark" {
		t.Fatalf("expected value visible to a new instance, got %q %v", got, err)
	}
	if _, err := os.Stat(first.Path() + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file renamed away")
	}
}

func TestFSStoreSkipsIdenticalWrite(t *testing.T) {
	s, _ := NewFSStore(t.TempDir(), "cli")
	ctx := context.Background()
	_ = s.Set(ctx, "theme", "dark")

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(s.Path(), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	_ = s.Set(ctx, "theme", "dark")

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(past) {
		t.Fatalf("expected identical write to leave the file alone")
	}
}

func TestFSStoreCorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cli.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, _ := NewFSStore(dir, "cli")
	if _, err := s.Get(context.Background(), "theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected corrupt file to read as empty, got %v", err)
	}
	if err := s.Set(context.Background(), "theme", "light"); err != nil {
		t.Fatalf("expected set to repair file, got %v", err)
	}
}

func TestNewFSStoreValidation(t *testing.T) {
	if _, err := NewFSStore("", "cli"); err == nil {
		t.Fatalf("expected error without dir")
	}
	if _, err := NewFSStore(t.TempDir(), "../escape"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

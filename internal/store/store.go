package store

import (
	"context"
	"errors"
	"regexp"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// ErrInvalidSession is returned for session ids unsafe to use as file names or key suffixes.
var ErrInvalidSession = errors.New("store: invalid session id")

var sessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Store is a session-scoped string key/value store for navigation state.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key in the session.
	Clear(ctx context.Context) error
}

// ValidSessionID reports whether id can name a session.
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

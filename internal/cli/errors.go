package cli

import (
	"errors"

	appgames "github.com/preston-bernstein/nba-scoreboard/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-scoreboard/internal/app/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func inputError(err error) error {
	return &usageError{err: err}
}

// ExitCode maps a command error to a process exit status. Bad input from the
// user is ExitUsage; everything else, upstream failures included, is ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *usageError
	switch {
	case errors.As(err, &usage),
		errors.Is(err, navigation.ErrInvalidDate),
		errors.Is(err, navigation.ErrGameDateUnknown),
		errors.Is(err, appgames.ErrInvalidGameID),
		errors.Is(err, appgames.ErrGameNotFound),
		errors.Is(err, appplayers.ErrMissingTeams):
		return ExitUsage
	}
	return ExitFailure
}

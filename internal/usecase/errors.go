package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify prefixes domain failures with their category so callers can match
// both, and wraps anything else with the failing operation.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, lineup.ErrNotFound),
		errors.Is(err, seat.ErrNotFound),
		errors.Is(err, training.ErrNotFound),
		errors.Is(err, person.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, lineup.ErrDuplicate),
		errors.Is(err, lineup.ErrHasSeats),
		errors.Is(err, seat.ErrSeatOccupied),
		errors.Is(err, seat.ErrPersonAlreadySeated):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrDependencyUnavailable):
		return err
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrDependencyUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

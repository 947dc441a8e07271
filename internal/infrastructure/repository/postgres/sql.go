package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
)

// Constraint names as declared in db/migrations.
const (
	constraintLineupTraining   = "lineup_training_id_key"
	constraintLineupTrainingFK = "lineup_training_id_fkey"
	constraintSeatSlot         = "uq_lineup_side_seat"
	constraintSeatPersonOnce   = "uq_lineup_person_once"
	constraintSeatLineupFK     = "lineup_seat_lineup_id_fkey"
	constraintSeatPersonFK     = "lineup_seat_person_id_fkey"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isForeignKeyViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation && pqErr.Constraint == constraint
}

// translateConstraint maps unique and foreign key violations to domain errors.
// Anything else is returned unchanged.
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case constraintLineupTraining:
			return fmt.Errorf("%w: %s", lineup.ErrDuplicate, pqErr.Detail)
		case constraintSeatSlot:
			return fmt.Errorf("%w: %s", seat.ErrSeatOccupied, pqErr.Detail)
		case constraintSeatPersonOnce:
			return fmt.Errorf("%w: %s", seat.ErrPersonAlreadySeated, pqErr.Detail)
		}
	case pqForeignKeyViolation:
		switch pqErr.Constraint {
		case constraintLineupTrainingFK:
			return fmt.Errorf("%w: %s", training.ErrNotFound, pqErr.Detail)
		case constraintSeatLineupFK:
			return fmt.Errorf("%w: %s", lineup.ErrNotFound, pqErr.Detail)
		case constraintSeatPersonFK:
			return fmt.Errorf("%w: %s", person.ErrNotFound, pqErr.Detail)
		}
	}
	return err
}

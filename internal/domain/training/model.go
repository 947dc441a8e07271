package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("training not found")

// Summary is the read-only projection of a training shown on a lineup.
type Summary struct {
	ID           int64
	TeamID       uuid.UUID
	TeamName     string
	LocationID   int64
	LocationName string
	StartAt      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Lookup resolves trainings owned by the training collaborator.
type Lookup interface {
	GetByID(ctx context.Context, id int64) (Summary, bool, error)
}

package person

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("person not found")

// PreferredSide is the paddling side a person declared on their profile.
type PreferredSide string

const (
	PreferredBoth  PreferredSide = "BOTH"
	PreferredLeft  PreferredSide = "LEFT"
	PreferredRight PreferredSide = "RIGHT"
)

// Summary is the read-only projection of a person shown on a seat.
type Summary struct {
	ID                uuid.UUID
	Name              string
	Phone             string
	Height            int
	Weight            int
	Side              PreferredSide
	ProfilePictureURL string
}

// Lookup resolves persons owned by the person collaborator.
type Lookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (Summary, bool, error)
}

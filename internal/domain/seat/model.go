package seat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("seat not found")
	ErrSeatOccupied        = errors.New("seat occupied")
	ErrPersonAlreadySeated = errors.New("person already seated in lineup")
)

// MaxNumber is bounded by the SMALLINT seat_number column.
const MaxNumber = 32767

// Side is one half of the boat roster.
type Side string

const (
	SideLeft  Side = "L"
	SideRight Side = "R"
)

func ParseSide(raw string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(raw))) {
	case SideLeft:
		return SideLeft, nil
	case SideRight:
		return SideRight, nil
	default:
		return "", fmt.Errorf("unknown seat side %q", raw)
	}
}

// Seat is one (side, number) slot of a lineup. PersonID is invalid for an
// empty seat.
type Seat struct {
	ID        int64
	LineupID  int64
	PersonID  uuid.NullUUID
	Side      Side
	Number    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Seat) Empty() bool {
	return !s.PersonID.Valid
}

// Placement is the requested position and occupant of a seat.
type Placement struct {
	LineupID int64
	Side     Side
	Number   int
	PersonID uuid.NullUUID
}

func (p Placement) Validate() error {
	if p.LineupID <= 0 {
		return fmt.Errorf("lineup id must be > 0")
	}
	if p.Side != SideLeft && p.Side != SideRight {
		return fmt.Errorf("unknown seat side %q", p.Side)
	}
	if p.Number <= 0 || p.Number > MaxNumber {
		return fmt.Errorf("seat number must be between 1 and %d", MaxNumber)
	}
	if p.PersonID.Valid && p.PersonID.UUID == uuid.Nil {
		return fmt.Errorf("person id cannot be the nil uuid")
	}
	return nil
}

// Less orders seats by lineup, side and number.
func Less(a, b Seat) bool {
	if a.LineupID != b.LineupID {
		return a.LineupID < b.LineupID
	}
	if a.Side != b.Side {
		return a.Side < b.Side
	}
	if a.Number != b.Number {
		return a.Number < b.Number
	}
	return a.ID < b.ID
}

package lineup

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("lineup not found")
	ErrDuplicate = errors.New("lineup already exists for training")
	ErrHasSeats  = errors.New("lineup still has seats")
)

// State is the publication flag of a lineup.
type State string

const (
	StateDraft     State = "DRAFT"
	StatePublished State = "PUBLISHED"
)

// Stored codes. Never renumber.
const (
	stateCodeDraft     int16 = 1
	stateCodePublished int16 = 2
)

func ParseState(raw string) (State, error) {
	switch State(strings.ToUpper(strings.TrimSpace(raw))) {
	case StateDraft:
		return StateDraft, nil
	case StatePublished:
		return StatePublished, nil
	default:
		return "", fmt.Errorf("unknown lineup state %q", raw)
	}
}

// Code returns the persisted SMALLINT for the state.
func (s State) Code() int16 {
	if s == StatePublished {
		return stateCodePublished
	}
	return stateCodeDraft
}

func StateFromCode(code int16) (State, error) {
	switch code {
	case stateCodeDraft:
		return StateDraft, nil
	case stateCodePublished:
		return StatePublished, nil
	default:
		return "", fmt.Errorf("unknown lineup state code %d", code)
	}
}

// Lineup is the seat roster of one training. A training has at most one lineup.
type Lineup struct {
	ID         int64
	TrainingID int64
	State      State
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

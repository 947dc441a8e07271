package usecase

import (
	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
)

// LineupView is a lineup with its training resolved for display.
type LineupView struct {
	Lineup   lineup.Lineup
	Training training.Summary
}

// SeatView is a seat with its occupant resolved. Person is nil for an empty
// seat.
type SeatView struct {
	Seat   seat.Seat
	Person *person.Summary
}

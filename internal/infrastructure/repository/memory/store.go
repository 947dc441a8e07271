package memory

import (
	"sync"
	"time"

	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
)

// Store keeps lineups and seats behind one lock, so a seat write and a
// lineup delete never interleave. It backs tests and STORAGE_DRIVER=memory.
type Store struct {
	mu           sync.RWMutex
	lineups      map[int64]lineup.Lineup
	seats        map[int64]seat.Seat
	nextLineupID int64
	nextSeatID   int64
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		lineups: make(map[int64]lineup.Lineup),
		seats:   make(map[int64]seat.Seat),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Lineups() *LineupRepository {
	return &LineupRepository{store: s}
}

func (s *Store) Seats() *SeatRegistry {
	return &SeatRegistry{store: s}
}

// seatsOfLineupLocked expects s.mu to be held.
func (s *Store) seatsOfLineupLocked(lineupID int64) []seat.Seat {
	out := make([]seat.Seat, 0)
	for _, item := range s.seats {
		if item.LineupID == lineupID {
			out = append(out, item)
		}
	}
	return out
}

package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
)

type SeatRegistry struct {
	store *Store
}

func (r *SeatRegistry) Reserve(_ context.Context, placement seat.Placement) (seat.Seat, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lineups[placement.LineupID]; !ok {
		return seat.Seat{}, fmt.Errorf("%w: id=%d", lineup.ErrNotFound, placement.LineupID)
	}
	if err := seat.CheckPlacement(s.seatsOfLineupLocked(placement.LineupID), 0, placement); err != nil {
		return seat.Seat{}, err
	}

	s.nextSeatID++
	now := s.now()
	item := seat.Seat{
		ID:        s.nextSeatID,
		LineupID:  placement.LineupID,
		PersonID:  placement.PersonID,
		Side:      placement.Side,
		Number:    placement.Number,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.seats[item.ID] = item
	return item, nil
}

func (r *SeatRegistry) Reassign(_ context.Context, seatID int64, placement seat.Placement) (seat.Seat, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.seats[seatID]
	if !ok {
		return seat.Seat{}, fmt.Errorf("%w: id=%d", seat.ErrNotFound, seatID)
	}
	if _, ok := s.lineups[placement.LineupID]; !ok {
		return seat.Seat{}, fmt.Errorf("%w: id=%d", lineup.ErrNotFound, placement.LineupID)
	}
	if err := seat.CheckPlacement(s.seatsOfLineupLocked(placement.LineupID), seatID, placement); err != nil {
		return seat.Seat{}, err
	}

	current.LineupID = placement.LineupID
	current.PersonID = placement.PersonID
	current.Side = placement.Side
	current.Number = placement.Number
	current.UpdatedAt = s.now()
	s.seats[seatID] = current
	return current, nil
}

func (r *SeatRegistry) Release(_ context.Context, seatID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seats[seatID]; !ok {
		return fmt.Errorf("%w: id=%d", seat.ErrNotFound, seatID)
	}
	delete(s.seats, seatID)
	return nil
}

func (r *SeatRegistry) Get(_ context.Context, seatID int64) (seat.Seat, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.seats[seatID]
	return item, ok, nil
}

func (r *SeatRegistry) ListByLineup(_ context.Context, lineupID int64, side seat.Side) ([]seat.Seat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]seat.Seat, 0)
	for _, item := range r.store.seatsOfLineupLocked(lineupID) {
		if side != "" && item.Side != side {
			continue
		}
		out = append(out, item)
	}
	sortSeats(out)
	return out, nil
}

func (r *SeatRegistry) List(_ context.Context) ([]seat.Seat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]seat.Seat, 0, len(r.store.seats))
	for _, item := range r.store.seats {
		out = append(out, item)
	}
	sortSeats(out)
	return out, nil
}

func (r *SeatRegistry) CountByLineup(_ context.Context, lineupID int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.seatsOfLineupLocked(lineupID)), nil
}

func sortSeats(items []seat.Seat) {
	sort.Slice(items, func(i, j int) bool { return seat.Less(items[i], items[j]) })
}

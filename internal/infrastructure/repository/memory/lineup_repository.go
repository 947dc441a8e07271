package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
)

type LineupRepository struct {
	store *Store
}

func (r *LineupRepository) Create(_ context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if holder, ok := r.byTrainingLocked(item.TrainingID); ok {
		return lineup.Lineup{}, fmt.Errorf("%w: training=%d lineup=%d", lineup.ErrDuplicate, item.TrainingID, holder.ID)
	}

	s.nextLineupID++
	now := s.now()
	item.ID = s.nextLineupID
	item.CreatedAt = now
	item.UpdatedAt = now
	s.lineups[item.ID] = item
	return item, nil
}

func (r *LineupRepository) GetByID(_ context.Context, id int64) (lineup.Lineup, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.lineups[id]
	return item, ok, nil
}

func (r *LineupRepository) GetByTraining(_ context.Context, trainingID int64) (lineup.Lineup, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.byTrainingLocked(trainingID)
	return item, ok, nil
}

func (r *LineupRepository) List(_ context.Context) ([]lineup.Lineup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.filterLocked(func(lineup.Lineup) bool { return true }), nil
}

func (r *LineupRepository) ListByState(_ context.Context, state lineup.State) ([]lineup.Lineup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.filterLocked(func(item lineup.Lineup) bool { return item.State == state }), nil
}

func (r *LineupRepository) Update(_ context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.lineups[item.ID]
	if !ok {
		return lineup.Lineup{}, fmt.Errorf("%w: id=%d", lineup.ErrNotFound, item.ID)
	}
	if holder, ok := r.byTrainingLocked(item.TrainingID); ok && holder.ID != item.ID {
		return lineup.Lineup{}, fmt.Errorf("%w: training=%d lineup=%d", lineup.ErrDuplicate, item.TrainingID, holder.ID)
	}

	current.TrainingID = item.TrainingID
	current.State = item.State
	current.UpdatedAt = s.now()
	s.lineups[current.ID] = current
	return current, nil
}

func (r *LineupRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lineups[id]; !ok {
		return fmt.Errorf("%w: id=%d", lineup.ErrNotFound, id)
	}
	if seats := s.seatsOfLineupLocked(id); len(seats) > 0 {
		return fmt.Errorf("%w: id=%d seats=%d", lineup.ErrHasSeats, id, len(seats))
	}

	delete(s.lineups, id)
	return nil
}

func (r *LineupRepository) byTrainingLocked(trainingID int64) (lineup.Lineup, bool) {
	for _, item := range r.store.lineups {
		if item.TrainingID == trainingID {
			return item, true
		}
	}
	return lineup.Lineup{}, false
}

func (r *LineupRepository) filterLocked(keep func(lineup.Lineup) bool) []lineup.Lineup {
	out := make([]lineup.Lineup, 0, len(r.store.lineups))
	for _, item := range r.store.lineups {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

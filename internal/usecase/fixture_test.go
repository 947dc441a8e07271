package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/dragon-lineup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/dragon-lineup/internal/platform/logging"
)

type serviceFixture struct {
	store    *memory.Store
	persons  *memory.PersonDirectory
	lineups  *LineupService
	seats    *SeatService
	observed *recordingObserver
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()

	store := memory.NewStore()
	persons := memory.NewPersonDirectory(memory.SeedPersons())
	trainings := memory.NewTrainingDirectory(memory.SeedTrainings())
	observed := &recordingObserver{}

	lineups := NewLineupService(store.Lineups(), trainings, 4, logging.NewNop())
	lineups.SetObserver(observed)
	seats := NewSeatService(lineups, store.Seats(), persons, 4, logging.NewNop())
	seats.SetObserver(observed)

	return serviceFixture{
		store:    store,
		persons:  persons,
		lineups:  lineups,
		seats:    seats,
		observed: observed,
	}
}

func (f serviceFixture) mustCreateLineup(t *testing.T, trainingID int64) LineupView {
	t.Helper()

	view, err := f.lineups.Create(t.Context(), SaveLineupInput{TrainingID: trainingID})
	if err != nil {
		t.Fatalf("create lineup for training %d: %v", trainingID, err)
	}
	return view
}

type observation struct {
	entity    string
	operation string
	outcome   string
}

type recordingObserver struct {
	mu    sync.Mutex
	items []observation
}

func (o *recordingObserver) ObserveMutation(entity, operation, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, observation{entity: entity, operation: operation, outcome: outcome})
}

func (o *recordingObserver) last() observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.items) == 0 {
		return observation{}
	}
	return o.items[len(o.items)-1]
}

package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
)

// PersonDirectory is a read-only person lookup over a fixed set.
type PersonDirectory struct {
	mu    sync.RWMutex
	items map[uuid.UUID]person.Summary
}

func NewPersonDirectory(seed []person.Summary) *PersonDirectory {
	items := make(map[uuid.UUID]person.Summary, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &PersonDirectory{items: items}
}

func (d *PersonDirectory) GetByID(_ context.Context, id uuid.UUID) (person.Summary, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	item, ok := d.items[id]
	return item, ok, nil
}

// Remove drops a person, mimicking deletion by the owning collaborator.
func (d *PersonDirectory) Remove(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.items, id)
}

// TrainingDirectory is a read-only training lookup over a fixed set.
type TrainingDirectory struct {
	mu    sync.RWMutex
	items map[int64]training.Summary
}

func NewTrainingDirectory(seed []training.Summary) *TrainingDirectory {
	items := make(map[int64]training.Summary, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &TrainingDirectory{items: items}
}

func (d *TrainingDirectory) GetByID(_ context.Context, id int64) (training.Summary, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	item, ok := d.items[id]
	return item, ok, nil
}

package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
)

const (
	TrainingIDMonday    int64 = 1
	TrainingIDWednesday int64 = 2
	TrainingIDSaturday  int64 = 3
)

var (
	TeamIDHarbourDragons = uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-901a2b3c4d5e")

	PersonIDAnna   = uuid.MustParse("0b7f6a1e-2c3d-4e5f-8a9b-0c1d2e3f4a01")
	PersonIDBoris  = uuid.MustParse("0b7f6a1e-2c3d-4e5f-8a9b-0c1d2e3f4a02")
	PersonIDClara  = uuid.MustParse("0b7f6a1e-2c3d-4e5f-8a9b-0c1d2e3f4a03")
	PersonIDDavid  = uuid.MustParse("0b7f6a1e-2c3d-4e5f-8a9b-0c1d2e3f4a04")
	PersonIDEliska = uuid.MustParse("0b7f6a1e-2c3d-4e5f-8a9b-0c1d2e3f4a05")
)

func SeedTrainings() []training.Summary {
	base := time.Date(2026, time.May, 4, 17, 30, 0, 0, time.UTC)
	created := base.AddDate(0, -1, 0)
	items := []training.Summary{
		{ID: TrainingIDMonday, StartAt: base},
		{ID: TrainingIDWednesday, StartAt: base.AddDate(0, 0, 2)},
		{ID: TrainingIDSaturday, StartAt: base.AddDate(0, 0, 5).Add(-8 * time.Hour)},
	}
	for i := range items {
		items[i].TeamID = TeamIDHarbourDragons
		items[i].TeamName = "Harbour Dragons"
		items[i].LocationID = 1
		items[i].LocationName = "North Quay Boathouse"
		items[i].CreatedAt = created
		items[i].UpdatedAt = created
	}
	return items
}

func SeedPersons() []person.Summary {
	return []person.Summary{
		{ID: PersonIDAnna, Name: "Anna Novak", Phone: "+420601000001", Height: 168, Weight: 61, Side: person.PreferredLeft},
		{ID: PersonIDBoris, Name: "Boris Kral", Phone: "+420601000002", Height: 185, Weight: 88, Side: person.PreferredRight},
		{ID: PersonIDClara, Name: "Clara Dvorak", Phone: "+420601000003", Height: 172, Weight: 66, Side: person.PreferredBoth},
		{ID: PersonIDDavid, Name: "David Horak", Phone: "+420601000004", Height: 179, Weight: 80, Side: person.PreferredBoth},
		{ID: PersonIDEliska, Name: "Eliska Mala", Phone: "+420601000005", Height: 160, Weight: 55, Side: person.PreferredLeft},
	}
}

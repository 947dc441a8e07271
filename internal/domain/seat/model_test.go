package seat

import (
	"sort"
	"testing"

	"github.com/google/uuid"
)

func TestParseSide(t *testing.T) {
	for raw, want := range map[string]Side{"L": SideLeft, "r": SideRight, " R ": SideRight} {
		got, err := ParseSide(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got=%s want=%s", raw, got, want)
		}
	}
	if _, err := ParseSide("LEFT"); err == nil {
		t.Fatalf("expected error for LEFT")
	}
}

func TestPlacementValidate(t *testing.T) {
	valid := Placement{LineupID: 1, Side: SideLeft, Number: 1}

	t.Run("empty seat is valid", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("validate: %v", err)
		}
	})

	t.Run("occupied seat is valid", func(t *testing.T) {
		p := valid
		p.PersonID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
		if err := p.Validate(); err != nil {
			t.Fatalf("validate: %v", err)
		}
	})

	invalid := map[string]Placement{
		"missing lineup":   {Side: SideLeft, Number: 1},
		"unknown side":     {LineupID: 1, Side: "X", Number: 1},
		"zero number":      {LineupID: 1, Side: SideRight, Number: 0},
		"negative number":  {LineupID: 1, Side: SideRight, Number: -3},
		"number too large": {LineupID: 1, Side: SideRight, Number: MaxNumber + 1},
		"nil person uuid":  {LineupID: 1, Side: SideRight, Number: 2, PersonID: uuid.NullUUID{Valid: true}},
	}
	for name, p := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLessOrdersBySideThenNumber(t *testing.T) {
	seats := []Seat{
		{ID: 4, LineupID: 1, Side: SideRight, Number: 1},
		{ID: 3, LineupID: 1, Side: SideLeft, Number: 2},
		{ID: 2, LineupID: 1, Side: SideLeft, Number: 1},
		{ID: 1, LineupID: 2, Side: SideLeft, Number: 1},
	}
	sort.Slice(seats, func(i, j int) bool { return Less(seats[i], seats[j]) })

	wantIDs := []int64{2, 3, 4, 1}
	for i, want := range wantIDs {
		if seats[i].ID != want {
			t.Fatalf("position %d: got seat %d want %d", i, seats[i].ID, want)
		}
	}
}

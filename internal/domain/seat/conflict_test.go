package seat

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCheckPlacement(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	existing := []Seat{
		{ID: 1, LineupID: 10, Side: SideLeft, Number: 1, PersonID: uuid.NullUUID{UUID: p1, Valid: true}},
		{ID: 2, LineupID: 10, Side: SideLeft, Number: 2},
		{ID: 3, LineupID: 20, Side: SideRight, Number: 1, PersonID: uuid.NullUUID{UUID: p2, Valid: true}},
	}

	tests := []struct {
		name    string
		selfID  int64
		p       Placement
		wantErr error
	}{
		{
			name:    "occupied slot",
			p:       Placement{LineupID: 10, Side: SideLeft, Number: 1, PersonID: uuid.NullUUID{UUID: p2, Valid: true}},
			wantErr: ErrSeatOccupied,
		},
		{
			name:    "same number on the other side is free",
			p:       Placement{LineupID: 10, Side: SideRight, Number: 1},
			wantErr: nil,
		},
		{
			name:    "person already seated",
			p:       Placement{LineupID: 10, Side: SideRight, Number: 1, PersonID: uuid.NullUUID{UUID: p1, Valid: true}},
			wantErr: ErrPersonAlreadySeated,
		},
		{
			name:    "person seated in another lineup only",
			p:       Placement{LineupID: 10, Side: SideRight, Number: 3, PersonID: uuid.NullUUID{UUID: p2, Valid: true}},
			wantErr: nil,
		},
		{
			name:    "multiple empty seats allowed",
			p:       Placement{LineupID: 10, Side: SideLeft, Number: 3},
			wantErr: nil,
		},
		{
			name:    "seat keeps its own slot and person",
			selfID:  1,
			p:       Placement{LineupID: 10, Side: SideLeft, Number: 1, PersonID: uuid.NullUUID{UUID: p1, Valid: true}},
			wantErr: nil,
		},
		{
			name:    "seat moves onto another seat",
			selfID:  1,
			p:       Placement{LineupID: 10, Side: SideLeft, Number: 2, PersonID: uuid.NullUUID{UUID: p1, Valid: true}},
			wantErr: ErrSeatOccupied,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPlacement(existing, tc.selfID, tc.p)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

package seat

import "fmt"

// CheckPlacement reports whether placing seat selfID at p collides with the
// seats already stored for the destination lineup. selfID is 0 for a new
// seat; a seat never collides with itself.
func CheckPlacement(existing []Seat, selfID int64, p Placement) error {
	for _, other := range existing {
		if other.ID == selfID || other.LineupID != p.LineupID {
			continue
		}
		if other.Side == p.Side && other.Number == p.Number {
			return fmt.Errorf("%w: lineup=%d side=%s seat_number=%d held by seat=%d",
				ErrSeatOccupied, p.LineupID, p.Side, p.Number, other.ID)
		}
	}

	if !p.PersonID.Valid {
		return nil
	}
	for _, other := range existing {
		if other.ID == selfID || other.LineupID != p.LineupID || !other.PersonID.Valid {
			continue
		}
		if other.PersonID.UUID == p.PersonID.UUID {
			return fmt.Errorf("%w: lineup=%d person=%s held by seat=%d",
				ErrPersonAlreadySeated, p.LineupID, p.PersonID.UUID, other.ID)
		}
	}
	return nil
}

package seat

import "context"

// Registry is the authoritative store of seat assignments. Implementations
// run every check-then-write for a lineup as one atomic unit.
type Registry interface {
	// Reserve returns ErrSeatOccupied or ErrPersonAlreadySeated on conflict
	// and lineup.ErrNotFound when the owning lineup is gone.
	Reserve(ctx context.Context, placement Placement) (Seat, error)
	// Reassign moves or re-occupies an existing seat. The seat never
	// conflicts with itself.
	Reassign(ctx context.Context, seatID int64, placement Placement) (Seat, error)
	Release(ctx context.Context, seatID int64) error
	Get(ctx context.Context, seatID int64) (Seat, bool, error)
	// ListByLineup orders by side then number. An empty side lists both.
	ListByLineup(ctx context.Context, lineupID int64, side Side) ([]Seat, error)
	List(ctx context.Context) ([]Seat, error)
	CountByLineup(ctx context.Context, lineupID int64) (int, error)
}

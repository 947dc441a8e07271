package lineup

import "context"

// Repository exposes lineup persistence operations.
//
// Create and Update return ErrDuplicate when the training is already bound to
// another lineup. Delete returns ErrNotFound for unknown ids and ErrHasSeats
// while the lineup still owns seats.
type Repository interface {
	Create(ctx context.Context, item Lineup) (Lineup, error)
	GetByID(ctx context.Context, id int64) (Lineup, bool, error)
	GetByTraining(ctx context.Context, trainingID int64) (Lineup, bool, error)
	List(ctx context.Context) ([]Lineup, error)
	ListByState(ctx context.Context, state State) ([]Lineup, error)
	Update(ctx context.Context, item Lineup) (Lineup, error)
	Delete(ctx context.Context, id int64) error
}

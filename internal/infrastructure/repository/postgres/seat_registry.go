package postgres

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
	qb "github.com/riskibarqy/dragon-lineup/internal/platform/querybuilder"
)

// SeatRegistry stores lineup seats. Writers lock the owning lineup row before
// checking placement, so two writers on one lineup are serialized. Lock order
// is seat row first, then lineup rows by ascending id.
type SeatRegistry struct {
	db *sqlx.DB
}

func NewSeatRegistry(db *sqlx.DB) *SeatRegistry {
	return &SeatRegistry{db: db}
}

func (r *SeatRegistry) Reserve(ctx context.Context, p seat.Placement) (seat.Seat, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return seat.Seat{}, fmt.Errorf("begin tx reserve seat: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	locked, err := lockLineups(ctx, tx, p.LineupID)
	if err != nil {
		return seat.Seat{}, err
	}
	if len(locked) == 0 {
		return seat.Seat{}, fmt.Errorf("%w: id=%d", lineup.ErrNotFound, p.LineupID)
	}

	existing, err := seatsOfLineup(ctx, tx, p.LineupID)
	if err != nil {
		return seat.Seat{}, err
	}
	if err := seat.CheckPlacement(existing, 0, p); err != nil {
		return seat.Seat{}, err
	}

	insertModel := seatInsertModel{
		LineupID:   p.LineupID,
		PersonID:   p.PersonID,
		Side:       string(p.Side),
		SeatNumber: p.Number,
	}
	query, args, err := qb.InsertModel("lineup_seat", insertModel, "RETURNING "+strings.Join(seatColumns, ", "))
	if err != nil {
		return seat.Seat{}, fmt.Errorf("build insert seat query: %w", err)
	}

	var row seatTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return seat.Seat{}, fmt.Errorf("insert seat: %w", translateConstraint(err))
	}

	if err := tx.Commit(); err != nil {
		return seat.Seat{}, fmt.Errorf("commit reserve seat: %w", err)
	}
	return seatFromRow(row), nil
}

func (r *SeatRegistry) Reassign(ctx context.Context, seatID int64, p seat.Placement) (seat.Seat, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return seat.Seat{}, fmt.Errorf("begin tx reassign seat: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := seatBaseSelectBuilder().
		Where(qb.Eq("id", seatID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return seat.Seat{}, fmt.Errorf("build lock seat query: %w", err)
	}
	var current seatTableModel
	if err := tx.GetContext(ctx, &current, query, args...); err != nil {
		if isNotFound(err) {
			return seat.Seat{}, fmt.Errorf("%w: id=%d", seat.ErrNotFound, seatID)
		}
		return seat.Seat{}, fmt.Errorf("lock seat: %w", err)
	}

	locked, err := lockLineups(ctx, tx, current.LineupID, p.LineupID)
	if err != nil {
		return seat.Seat{}, err
	}
	if !slices.Contains(locked, p.LineupID) {
		return seat.Seat{}, fmt.Errorf("%w: id=%d", lineup.ErrNotFound, p.LineupID)
	}

	existing, err := seatsOfLineup(ctx, tx, p.LineupID)
	if err != nil {
		return seat.Seat{}, err
	}
	if err := seat.CheckPlacement(existing, seatID, p); err != nil {
		return seat.Seat{}, err
	}

	query, args, err = qb.Update("lineup_seat").
		Set("lineup_id", p.LineupID).
		Set("person_id", p.PersonID).
		Set("side", string(p.Side)).
		Set("seat_number", p.Number).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", seatID)).
		Suffix("RETURNING " + strings.Join(seatColumns, ", ")).
		ToSQL()
	if err != nil {
		return seat.Seat{}, fmt.Errorf("build update seat query: %w", err)
	}

	var row seatTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return seat.Seat{}, fmt.Errorf("update seat: %w", translateConstraint(err))
	}

	if err := tx.Commit(); err != nil {
		return seat.Seat{}, fmt.Errorf("commit reassign seat: %w", err)
	}
	return seatFromRow(row), nil
}

func (r *SeatRegistry) Release(ctx context.Context, seatID int64) error {
	query, args, err := qb.DeleteFrom("lineup_seat").Where(qb.Eq("id", seatID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete seat query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete seat: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete seat: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", seat.ErrNotFound, seatID)
	}
	return nil
}

func (r *SeatRegistry) Get(ctx context.Context, seatID int64) (seat.Seat, bool, error) {
	query, args, err := seatBaseSelectBuilder().Where(qb.Eq("id", seatID)).ToSQL()
	if err != nil {
		return seat.Seat{}, false, fmt.Errorf("build get seat query: %w", err)
	}

	var row seatTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return seat.Seat{}, false, nil
		}
		return seat.Seat{}, false, fmt.Errorf("get seat: %w", err)
	}
	return seatFromRow(row), true, nil
}

func (r *SeatRegistry) ListByLineup(ctx context.Context, lineupID int64, side seat.Side) ([]seat.Seat, error) {
	conditions := []qb.Condition{qb.Eq("lineup_id", lineupID)}
	if side != "" {
		conditions = append(conditions, qb.Eq("side", string(side)))
	}
	query, args, err := seatBaseSelectBuilder().
		Where(conditions...).
		OrderBy("side", "seat_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seats by lineup query: %w", err)
	}

	var rows []seatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seats by lineup: %w", err)
	}
	return seatsFromRows(rows), nil
}

func (r *SeatRegistry) List(ctx context.Context) ([]seat.Seat, error) {
	query, args, err := seatBaseSelectBuilder().
		OrderBy("lineup_id", "side", "seat_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seats query: %w", err)
	}

	var rows []seatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	return seatsFromRows(rows), nil
}

func (r *SeatRegistry) CountByLineup(ctx context.Context, lineupID int64) (int, error) {
	return countSeats(ctx, r.db, lineupID)
}

func seatsOfLineup(ctx context.Context, tx *sqlx.Tx, lineupID int64) ([]seat.Seat, error) {
	query, args, err := seatBaseSelectBuilder().Where(qb.Eq("lineup_id", lineupID)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build load lineup seats query: %w", err)
	}

	var rows []seatTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load lineup seats: %w", err)
	}
	return seatsFromRows(rows), nil
}

func countSeats(ctx context.Context, q sqlx.QueryerContext, lineupID int64) (int, error) {
	query, args, err := qb.Select("COUNT(1)").
		From("lineup_seat").
		Where(qb.Eq("lineup_id", lineupID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count seats query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count seats: %w", err)
	}
	return count, nil
}

func seatBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(seatColumns...).From("lineup_seat")
}

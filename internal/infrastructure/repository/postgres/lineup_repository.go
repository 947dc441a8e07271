package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	qb "github.com/riskibarqy/dragon-lineup/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) Create(ctx context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	insertModel := lineupInsertModel{
		TrainingID: item.TrainingID,
		State:      item.State.Code(),
	}
	query, args, err := qb.InsertModel("lineup", insertModel, "RETURNING "+strings.Join(lineupColumns, ", "))
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("build insert lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return lineup.Lineup{}, fmt.Errorf("insert lineup: %w", translateConstraint(err))
	}
	return lineupFromRow(row)
}

func (r *LineupRepository) GetByID(ctx context.Context, id int64) (lineup.Lineup, bool, error) {
	return r.getOne(ctx, "get lineup", qb.Eq("id", id))
}

func (r *LineupRepository) GetByTraining(ctx context.Context, trainingID int64) (lineup.Lineup, bool, error) {
	return r.getOne(ctx, "get lineup by training", qb.Eq("training_id", trainingID))
}

func (r *LineupRepository) getOne(ctx context.Context, op string, cond qb.Condition) (lineup.Lineup, bool, error) {
	query, args, err := lineupBaseSelectBuilder().Where(cond).ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("%s: %w", op, err)
	}

	item, err := lineupFromRow(row)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return item, true, nil
}

func (r *LineupRepository) List(ctx context.Context) ([]lineup.Lineup, error) {
	query, args, err := lineupBaseSelectBuilder().OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}
	return lineupsFromRows(rows)
}

func (r *LineupRepository) ListByState(ctx context.Context, state lineup.State) ([]lineup.Lineup, error) {
	query, args, err := lineupBaseSelectBuilder().
		Where(qb.Eq("state", state.Code())).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by state query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by state: %w", err)
	}
	return lineupsFromRows(rows)
}

func (r *LineupRepository) Update(ctx context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	query, args, err := qb.Update("lineup").
		Set("training_id", item.TrainingID).
		Set("state", item.State.Code()).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		Suffix("RETURNING " + strings.Join(lineupColumns, ", ")).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("build update lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, fmt.Errorf("%w: id=%d", lineup.ErrNotFound, item.ID)
		}
		return lineup.Lineup{}, fmt.Errorf("update lineup: %w", translateConstraint(err))
	}
	return lineupFromRow(row)
}

// Delete locks the lineup row so no seat can be reserved into it while the
// seat count is checked.
func (r *LineupRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete lineup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	locked, err := lockLineups(ctx, tx, id)
	if err != nil {
		return err
	}
	if len(locked) == 0 {
		return fmt.Errorf("%w: id=%d", lineup.ErrNotFound, id)
	}

	seats, err := countSeats(ctx, tx, id)
	if err != nil {
		return err
	}
	if seats > 0 {
		return fmt.Errorf("%w: id=%d seats=%d", lineup.ErrHasSeats, id, seats)
	}

	query, args, err := qb.DeleteFrom("lineup").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete lineup query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err, constraintSeatLineupFK) {
			return fmt.Errorf("%w: id=%d", lineup.ErrHasSeats, id)
		}
		return fmt.Errorf("delete lineup: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete lineup: %w", err)
	}
	return nil
}

// lockLineups takes row locks on the given lineups in ascending id order and
// returns the ids that exist.
func lockLineups(ctx context.Context, tx *sqlx.Tx, ids ...int64) ([]int64, error) {
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	query, args, err := qb.Select("id").
		From("lineup").
		Where(qb.In("id", values)).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock lineup query: %w", err)
	}

	var locked []int64
	if err := tx.SelectContext(ctx, &locked, query, args...); err != nil {
		return nil, fmt.Errorf("lock lineup: %w", err)
	}
	return locked, nil
}

func lineupBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(lineupColumns...).From("lineup")
}

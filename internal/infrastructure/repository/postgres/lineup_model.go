package postgres

import (
	"fmt"
	"time"

	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
)

type lineupTableModel struct {
	ID         int64     `db:"id"`
	TrainingID int64     `db:"training_id"`
	State      int16     `db:"state"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type lineupInsertModel struct {
	TrainingID int64 `db:"training_id"`
	State      int16 `db:"state"`
}

var lineupColumns = []string{"id", "training_id", "state", "created_at", "updated_at"}

func lineupFromRow(row lineupTableModel) (lineup.Lineup, error) {
	state, err := lineup.StateFromCode(row.State)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("lineup %d: %w", row.ID, err)
	}
	return lineup.Lineup{
		ID:         row.ID,
		TrainingID: row.TrainingID,
		State:      state,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func lineupsFromRows(rows []lineupTableModel) ([]lineup.Lineup, error) {
	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		item, err := lineupFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

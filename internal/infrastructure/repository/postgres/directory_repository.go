package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
	qb "github.com/riskibarqy/dragon-lineup/internal/platform/querybuilder"
)

// PersonRepository reads the person table owned by the member service.
type PersonRepository struct {
	db *sqlx.DB
}

func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (person.Summary, bool, error) {
	query, args, err := qb.Select("id", "name", "phone", "height", "weight", "preferred_side", "profile_picture_url").
		From("person").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return person.Summary{}, false, fmt.Errorf("build get person query: %w", err)
	}

	var row personTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return person.Summary{}, false, nil
		}
		return person.Summary{}, false, fmt.Errorf("get person: %w", err)
	}
	return personFromRow(row), true, nil
}

// TrainingRepository reads trainings together with their team and location names.
type TrainingRepository struct {
	db *sqlx.DB
}

func NewTrainingRepository(db *sqlx.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) GetByID(ctx context.Context, id int64) (training.Summary, bool, error) {
	query, args, err := qb.Select(
		"t.id",
		"t.team_id",
		"tm.name AS team_name",
		"t.location_id",
		"loc.name AS location_name",
		"t.start_at",
		"t.created_at",
		"t.updated_at",
	).
		From("training t").
		Join("JOIN team tm ON tm.id = t.team_id").
		Join("JOIN location loc ON loc.id = t.location_id").
		Where(qb.Eq("t.id", id)).
		ToSQL()
	if err != nil {
		return training.Summary{}, false, fmt.Errorf("build get training query: %w", err)
	}

	var row trainingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return training.Summary{}, false, nil
		}
		return training.Summary{}, false, fmt.Errorf("get training: %w", err)
	}
	return trainingFromRow(row), true, nil
}

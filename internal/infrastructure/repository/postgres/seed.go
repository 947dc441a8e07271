package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dragon-lineup/internal/infrastructure/repository/memory"
)

// BootstrapSeed fills the collaborator tables with the fixed dev fixtures when
// no training exists yet. Lineups and seats are never seeded.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM training`); err != nil {
		return fmt.Errorf("count trainings for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	trainings := memory.SeedTrainings()
	teams := make(map[string]bool)
	locations := make(map[int64]bool)
	for _, t := range trainings {
		if !teams[t.TeamID.String()] {
			teams[t.TeamID.String()] = true
			if err := execNamed(ctx, tx, `
INSERT INTO team (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
				"id":   t.TeamID,
				"name": t.TeamName,
			}); err != nil {
				return fmt.Errorf("seed team %s: %w", t.TeamID, err)
			}
		}
		if !locations[t.LocationID] {
			locations[t.LocationID] = true
			if err := execNamed(ctx, tx, `
INSERT INTO location (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
				"id":   t.LocationID,
				"name": t.LocationName,
			}); err != nil {
				return fmt.Errorf("seed location %d: %w", t.LocationID, err)
			}
		}

		if err := execNamed(ctx, tx, `
INSERT INTO training (id, team_id, location_id, start_at)
VALUES (:id, :team_id, :location_id, :start_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          t.ID,
			"team_id":     t.TeamID,
			"location_id": t.LocationID,
			"start_at":    t.StartAt.UTC(),
		}); err != nil {
			return fmt.Errorf("seed training %d: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedPersons() {
		if err := execNamed(ctx, tx, `
INSERT INTO person (id, name, phone, height, weight, preferred_side, profile_picture_url)
VALUES (:id, :name, :phone, :height, :weight, :preferred_side, :profile_picture_url)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":                  p.ID,
			"name":                p.Name,
			"phone":               p.Phone,
			"height":              p.Height,
			"weight":              p.Weight,
			"preferred_side":      string(p.Side),
			"profile_picture_url": p.ProfilePictureURL,
		}); err != nil {
			return fmt.Errorf("seed person %s: %w", p.ID, err)
		}
	}

	// explicit ids above bypass the sequences
	for _, table := range []string{"location", "training"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table)); err != nil {
			return fmt.Errorf("advance %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func execNamed(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	sqlQuery = tx.Rebind(sqlQuery)
	_, err = tx.ExecContext(ctx, sqlQuery, args...)
	return err
}

package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
)

type personTableModel struct {
	ID                uuid.UUID `db:"id"`
	Name              string    `db:"name"`
	Phone             string    `db:"phone"`
	Height            int       `db:"height"`
	Weight            int       `db:"weight"`
	PreferredSide     string    `db:"preferred_side"`
	ProfilePictureURL string    `db:"profile_picture_url"`
}

type trainingTableModel struct {
	ID           int64     `db:"id"`
	TeamID       uuid.UUID `db:"team_id"`
	TeamName     string    `db:"team_name"`
	LocationID   int64     `db:"location_id"`
	LocationName string    `db:"location_name"`
	StartAt      time.Time `db:"start_at"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func personFromRow(row personTableModel) person.Summary {
	return person.Summary{
		ID:                row.ID,
		Name:              row.Name,
		Phone:             row.Phone,
		Height:            row.Height,
		Weight:            row.Weight,
		Side:              person.PreferredSide(row.PreferredSide),
		ProfilePictureURL: row.ProfilePictureURL,
	}
}

func trainingFromRow(row trainingTableModel) training.Summary {
	return training.Summary{
		ID:           row.ID,
		TeamID:       row.TeamID,
		TeamName:     row.TeamName,
		LocationID:   row.LocationID,
		LocationName: row.LocationName,
		StartAt:      row.StartAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

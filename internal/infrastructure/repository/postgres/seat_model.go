package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
)

type seatTableModel struct {
	ID         int64         `db:"id"`
	LineupID   int64         `db:"lineup_id"`
	PersonID   uuid.NullUUID `db:"person_id"`
	Side       string        `db:"side"`
	SeatNumber int           `db:"seat_number"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type seatInsertModel struct {
	LineupID   int64         `db:"lineup_id"`
	PersonID   uuid.NullUUID `db:"person_id"`
	Side       string        `db:"side"`
	SeatNumber int           `db:"seat_number"`
}

var seatColumns = []string{"id", "lineup_id", "person_id", "side", "seat_number", "created_at", "updated_at"}

func seatFromRow(row seatTableModel) seat.Seat {
	return seat.Seat{
		ID:        row.ID,
		LineupID:  row.LineupID,
		PersonID:  row.PersonID,
		Side:      seat.Side(row.Side),
		Number:    row.SeatNumber,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func seatsFromRows(rows []seatTableModel) []seat.Seat {
	out := make([]seat.Seat, 0, len(rows))
	for _, row := range rows {
		out = append(out, seatFromRow(row))
	}
	return out
}

package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/usecase"
)

// saveSeatRequest leaves the seat empty when personId is null or absent.
type saveSeatRequest struct {
	LineupID   int64   `json:"lineupId" validate:"required,gt=0"`
	PersonID   *string `json:"personId"`
	Side       string  `json:"side" validate:"required,oneof=L R"`
	SeatNumber int     `json:"seatNumber" validate:"required,gt=0,lte=32767"`
}

func (r saveSeatRequest) input() usecase.SaveSeatInput {
	in := usecase.SaveSeatInput{
		LineupID:   r.LineupID,
		Side:       r.Side,
		SeatNumber: r.SeatNumber,
	}
	if r.PersonID != nil {
		in.PersonID = strings.TrimSpace(*r.PersonID)
	}
	return in
}

type seatDTO struct {
	ID         int64      `json:"id"`
	LineupID   int64      `json:"lineupId"`
	Person     *personDTO `json:"person"`
	Side       string     `json:"side"`
	SeatNumber int        `json:"seatNumber"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
}

type personDTO struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Phone             string `json:"phone,omitempty"`
	Height            int    `json:"height,omitempty"`
	Weight            int    `json:"weight,omitempty"`
	Side              string `json:"side,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

func (h *Handler) ListLineupSeats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineupSeats")
	defer span.End()

	lineupID, err := queryID(r, "lineupId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	side := strings.TrimSpace(r.URL.Query().Get("side"))

	items, err := h.seatService.ListSeats(ctx, usecase.ListSeatsFilter{
		LineupID: lineupID,
		Side:     side,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list seats failed", "lineup_id", lineupID, "side", side, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seatDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seatToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLineupSeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupSeat")
	defer span.End()

	id, err := pathID(r, "seatID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seatService.GetSeat(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get seat failed", "seat_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seatToDTO(ctx, item))
}

func (h *Handler) CreateLineupSeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLineupSeat")
	defer span.End()

	var req saveSeatRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seatService.CreateSeat(ctx, req.input())
	if err != nil {
		h.logger.WarnContext(ctx, "create seat failed",
			"lineup_id", req.LineupID,
			"side", req.Side,
			"seat_number", req.SeatNumber,
			"actor", actorID(ctx),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, seatToDTO(ctx, item))
}

func (h *Handler) UpdateLineupSeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLineupSeat")
	defer span.End()

	id, err := pathID(r, "seatID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req saveSeatRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seatService.UpdateSeat(ctx, id, req.input())
	if err != nil {
		h.logger.WarnContext(ctx, "update seat failed", "seat_id", id, "actor", actorID(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seatToDTO(ctx, item))
}

func (h *Handler) DeleteLineupSeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLineupSeat")
	defer span.End()

	id, err := pathID(r, "seatID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.seatService.DeleteSeat(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete seat failed", "seat_id", id, "actor", actorID(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeNoContent(w)
}

func seatToDTO(ctx context.Context, v usecase.SeatView) seatDTO {
	ctx, span := startSpan(ctx, "httpapi.seatToDTO")
	defer span.End()

	return seatDTO{
		ID:         v.Seat.ID,
		LineupID:   v.Seat.LineupID,
		Person:     personToDTO(ctx, v.Person),
		Side:       string(v.Seat.Side),
		SeatNumber: v.Seat.Number,
		CreatedAt:  formatTime(v.Seat.CreatedAt),
		UpdatedAt:  formatTime(v.Seat.UpdatedAt),
	}
}

func personToDTO(ctx context.Context, v *person.Summary) *personDTO {
	_, span := startSpan(ctx, "httpapi.personToDTO")
	defer span.End()

	if v == nil {
		return nil
	}
	return &personDTO{
		ID:                v.ID.String(),
		Name:              v.Name,
		Phone:             v.Phone,
		Height:            v.Height,
		Weight:            v.Weight,
		Side:              string(v.Side),
		ProfilePictureURL: v.ProfilePictureURL,
	}
}

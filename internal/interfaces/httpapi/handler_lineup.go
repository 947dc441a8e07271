package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
	"github.com/riskibarqy/dragon-lineup/internal/usecase"
)

type saveLineupRequest struct {
	TrainingID int64  `json:"trainingId" validate:"required,gt=0"`
	State      string `json:"state" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

type lineupDTO struct {
	ID        int64       `json:"id"`
	Training  trainingDTO `json:"training"`
	State     string      `json:"state"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

type trainingDTO struct {
	ID        int64        `json:"id"`
	Team      *teamDTO     `json:"team,omitempty"`
	Location  *locationDTO `json:"location,omitempty"`
	StartAt   string       `json:"startAt,omitempty"`
	CreatedAt string       `json:"createdAt,omitempty"`
	UpdatedAt string       `json:"updatedAt,omitempty"`
}

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type locationDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) ListLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineups")
	defer span.End()

	trainingID, err := queryID(r, "trainingId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	state := strings.TrimSpace(r.URL.Query().Get("state"))

	items, err := h.lineupService.List(ctx, usecase.ListLineupsFilter{
		State:      state,
		TrainingID: trainingID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list lineups failed", "training_id", trainingID, "state", state, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]lineupDTO, 0, len(items))
	for _, item := range items {
		out = append(out, lineupToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	id, err := pathID(r, "lineupID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.GetView(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "lineup_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) CreateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLineup")
	defer span.End()

	var req saveLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Create(ctx, usecase.SaveLineupInput{
		TrainingID: req.TrainingID,
		State:      req.State,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create lineup failed", "training_id", req.TrainingID, "actor", actorID(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, lineupToDTO(ctx, item))
}

func (h *Handler) UpdateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLineup")
	defer span.End()

	id, err := pathID(r, "lineupID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req saveLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Update(ctx, id, usecase.SaveLineupInput{
		TrainingID: req.TrainingID,
		State:      req.State,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update lineup failed", "lineup_id", id, "actor", actorID(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) DeleteLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLineup")
	defer span.End()

	id, err := pathID(r, "lineupID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.lineupService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete lineup failed", "lineup_id", id, "actor", actorID(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeNoContent(w)
}

func lineupToDTO(ctx context.Context, v usecase.LineupView) lineupDTO {
	ctx, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	return lineupDTO{
		ID:        v.Lineup.ID,
		Training:  trainingToDTO(ctx, v.Training),
		State:     string(v.Lineup.State),
		CreatedAt: formatTime(v.Lineup.CreatedAt),
		UpdatedAt: formatTime(v.Lineup.UpdatedAt),
	}
}

// trainingToDTO leaves out what an id-only summary does not carry.
func trainingToDTO(ctx context.Context, v training.Summary) trainingDTO {
	_, span := startSpan(ctx, "httpapi.trainingToDTO")
	defer span.End()

	out := trainingDTO{
		ID:        v.ID,
		StartAt:   formatTime(v.StartAt),
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
	if strings.TrimSpace(v.TeamName) != "" {
		out.Team = &teamDTO{ID: v.TeamID.String(), Name: v.TeamName}
	}
	if v.LocationID > 0 {
		out.Location = &locationDTO{ID: v.LocationID, Name: v.LocationName}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
	"github.com/riskibarqy/dragon-lineup/internal/infrastructure/repository/memory"
)

func TestLineupService_CreateDefaultsToDraft(t *testing.T) {
	f := newServiceFixture(t)

	view, err := f.lineups.Create(t.Context(), SaveLineupInput{TrainingID: memory.TrainingIDMonday})
	if err != nil {
		t.Fatalf("create lineup: %v", err)
	}
	if view.Lineup.ID <= 0 {
		t.Fatalf("expected generated id, got %d", view.Lineup.ID)
	}
	if view.Lineup.State != lineup.StateDraft {
		t.Fatalf("expected DRAFT, got %s", view.Lineup.State)
	}
	if view.Training.TeamName != "Harbour Dragons" {
		t.Fatalf("expected resolved training summary, got %+v", view.Training)
	}
	if got := f.observed.last(); got.outcome != "ok" || got.operation != "create" {
		t.Fatalf("unexpected observation: %+v", got)
	}
}

func TestLineupService_CreateDuplicateTraining(t *testing.T) {
	f := newServiceFixture(t)
	existing := f.mustCreateLineup(t, memory.TrainingIDMonday)

	_, err := f.lineups.Create(t.Context(), SaveLineupInput{TrainingID: memory.TrainingIDMonday, State: "PUBLISHED"})
	if !errors.Is(err, lineup.ErrDuplicate) {
		t.Fatalf("expected lineup.ErrDuplicate, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict category, got %v", err)
	}

	got, err := f.lineups.Get(t.Context(), existing.Lineup.ID)
	if err != nil {
		t.Fatalf("get existing lineup: %v", err)
	}
	if got.State != lineup.StateDraft {
		t.Fatalf("existing lineup must be unaffected, got %+v", got)
	}
	if f.observed.last().outcome != "conflict" {
		t.Fatalf("expected conflict observation, got %+v", f.observed.last())
	}
}

func TestLineupService_CreateValidation(t *testing.T) {
	f := newServiceFixture(t)

	t.Run("unknown training", func(t *testing.T) {
		_, err := f.lineups.Create(t.Context(), SaveLineupInput{TrainingID: 999})
		if !errors.Is(err, training.ErrNotFound) || !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected training not found, got %v", err)
		}
	})

	t.Run("missing training id", func(t *testing.T) {
		_, err := f.lineups.Create(t.Context(), SaveLineupInput{})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("malformed state", func(t *testing.T) {
		_, err := f.lineups.Create(t.Context(), SaveLineupInput{TrainingID: memory.TrainingIDMonday, State: "ARCHIVED"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestLineupService_GetMissing(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.lineups.GetView(t.Context(), 41); !errors.Is(err, lineup.ErrNotFound) {
		t.Fatalf("expected lineup.ErrNotFound, got %v", err)
	}
	if _, err := f.lineups.GetByTraining(t.Context(), memory.TrainingIDSaturday); !errors.Is(err, lineup.ErrNotFound) {
		t.Fatalf("expected lineup.ErrNotFound by training, got %v", err)
	}
}

func TestLineupService_PublishTransitions(t *testing.T) {
	f := newServiceFixture(t)
	created := f.mustCreateLineup(t, memory.TrainingIDMonday)
	id := created.Lineup.ID

	steps := []struct {
		state string
		want  lineup.State
	}{
		{state: "PUBLISHED", want: lineup.StatePublished},
		{state: "PUBLISHED", want: lineup.StatePublished},
		{state: "DRAFT", want: lineup.StateDraft},
		{state: "", want: lineup.StateDraft},
	}
	for _, step := range steps {
		view, err := f.lineups.Update(t.Context(), id, SaveLineupInput{TrainingID: memory.TrainingIDMonday, State: step.state})
		if err != nil {
			t.Fatalf("update to %q: %v", step.state, err)
		}
		if view.Lineup.State != step.want {
			t.Fatalf("update to %q: got %s want %s", step.state, view.Lineup.State, step.want)
		}
	}
}

func TestLineupService_UpdateFailures(t *testing.T) {
	f := newServiceFixture(t)
	first := f.mustCreateLineup(t, memory.TrainingIDMonday)
	f.mustCreateLineup(t, memory.TrainingIDWednesday)

	t.Run("missing lineup", func(t *testing.T) {
		_, err := f.lineups.Update(t.Context(), 404, SaveLineupInput{TrainingID: memory.TrainingIDMonday})
		if !errors.Is(err, lineup.ErrNotFound) {
			t.Fatalf("expected lineup.ErrNotFound, got %v", err)
		}
	})

	t.Run("training taken", func(t *testing.T) {
		_, err := f.lineups.Update(t.Context(), first.Lineup.ID, SaveLineupInput{TrainingID: memory.TrainingIDWednesday})
		if !errors.Is(err, lineup.ErrDuplicate) {
			t.Fatalf("expected lineup.ErrDuplicate, got %v", err)
		}
	})

	t.Run("unknown training", func(t *testing.T) {
		_, err := f.lineups.Update(t.Context(), first.Lineup.ID, SaveLineupInput{TrainingID: 77})
		if !errors.Is(err, training.ErrNotFound) {
			t.Fatalf("expected training.ErrNotFound, got %v", err)
		}
	})

	t.Run("rebind to free training", func(t *testing.T) {
		view, err := f.lineups.Update(t.Context(), first.Lineup.ID, SaveLineupInput{TrainingID: memory.TrainingIDSaturday})
		if err != nil {
			t.Fatalf("rebind lineup: %v", err)
		}
		if view.Lineup.TrainingID != memory.TrainingIDSaturday || view.Training.ID != memory.TrainingIDSaturday {
			t.Fatalf("unexpected rebind result: %+v", view)
		}
	})
}

func TestLineupService_DeleteRejectsLineupWithSeats(t *testing.T) {
	f := newServiceFixture(t)
	created := f.mustCreateLineup(t, memory.TrainingIDMonday)

	placed, err := f.seats.CreateSeat(t.Context(), SaveSeatInput{LineupID: created.Lineup.ID, Side: "L", SeatNumber: 1})
	if err != nil {
		t.Fatalf("create seat: %v", err)
	}

	err = f.lineups.Delete(t.Context(), created.Lineup.ID)
	if !errors.Is(err, lineup.ErrHasSeats) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected lineup.ErrHasSeats conflict, got %v", err)
	}
	if _, err := f.lineups.Get(t.Context(), created.Lineup.ID); err != nil {
		t.Fatalf("lineup must survive rejected delete: %v", err)
	}

	if err := f.seats.DeleteSeat(t.Context(), placed.Seat.ID); err != nil {
		t.Fatalf("delete seat: %v", err)
	}
	if err := f.lineups.Delete(t.Context(), created.Lineup.ID); err != nil {
		t.Fatalf("delete lineup: %v", err)
	}
	if err := f.lineups.Delete(t.Context(), created.Lineup.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted lineup, got %v", err)
	}
}

func TestLineupService_ListFilters(t *testing.T) {
	f := newServiceFixture(t)
	draft := f.mustCreateLineup(t, memory.TrainingIDMonday)
	published, err := f.lineups.Create(t.Context(), SaveLineupInput{TrainingID: memory.TrainingIDWednesday, State: "PUBLISHED"})
	if err != nil {
		t.Fatalf("create published lineup: %v", err)
	}

	all, err := f.lineups.List(t.Context(), ListLineupsFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 || all[0].Lineup.ID != draft.Lineup.ID {
		t.Fatalf("unexpected list: %+v", all)
	}

	byState, err := f.lineups.List(t.Context(), ListLineupsFilter{State: "published"})
	if err != nil {
		t.Fatalf("list by state: %v", err)
	}
	if len(byState) != 1 || byState[0].Lineup.ID != published.Lineup.ID {
		t.Fatalf("unexpected list by state: %+v", byState)
	}

	byTraining, err := f.lineups.List(t.Context(), ListLineupsFilter{TrainingID: memory.TrainingIDMonday})
	if err != nil {
		t.Fatalf("list by training: %v", err)
	}
	if len(byTraining) != 1 || byTraining[0].Lineup.ID != draft.Lineup.ID {
		t.Fatalf("unexpected list by training: %+v", byTraining)
	}

	mismatch, err := f.lineups.List(t.Context(), ListLineupsFilter{TrainingID: memory.TrainingIDMonday, State: "PUBLISHED"})
	if err != nil {
		t.Fatalf("list by training and state: %v", err)
	}
	if len(mismatch) != 0 {
		t.Fatalf("expected empty result for state mismatch, got %+v", mismatch)
	}

	if _, err := f.lineups.List(t.Context(), ListLineupsFilter{TrainingID: memory.TrainingIDSaturday}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for training without lineup, got %v", err)
	}
	if _, err := f.lineups.List(t.Context(), ListLineupsFilter{State: "LIVE"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad state, got %v", err)
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/training"
	"github.com/riskibarqy/dragon-lineup/internal/platform/logging"
)

// SaveLineupInput is the caller payload for create and update. An empty State
// means DRAFT on create and "keep current" on update.
type SaveLineupInput struct {
	TrainingID int64
	State      string
}

// ListLineupsFilter narrows List. Zero values mean "any".
type ListLineupsFilter struct {
	State      string
	TrainingID int64
}

type LineupService struct {
	lineupRepo     lineup.Repository
	trainingLookup training.Lookup
	observer       MutationObserver
	logger         *logging.Logger
	enrichWorkers  int
}

func NewLineupService(
	lineupRepo lineup.Repository,
	trainingLookup training.Lookup,
	enrichWorkers int,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	if enrichWorkers <= 0 {
		enrichWorkers = defaultEnrichWorkers
	}

	return &LineupService{
		lineupRepo:     lineupRepo,
		trainingLookup: trainingLookup,
		observer:       nopObserver{},
		logger:         logger,
		enrichWorkers:  enrichWorkers,
	}
}

func (s *LineupService) SetObserver(observer MutationObserver) {
	if observer == nil {
		observer = nopObserver{}
	}
	s.observer = observer
}

func (s *LineupService) Create(ctx context.Context, input SaveLineupInput) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Create")
	defer span.End()

	started := time.Now()
	view, err := s.create(ctx, input)
	observe(s.observer, "lineup", "create", started, err)
	return view, err
}

func (s *LineupService) create(ctx context.Context, input SaveLineupInput) (LineupView, error) {
	if input.TrainingID <= 0 {
		return LineupView{}, fmt.Errorf("%w: training id must be > 0", ErrInvalidInput)
	}
	state := lineup.StateDraft
	if strings.TrimSpace(input.State) != "" {
		parsed, err := lineup.ParseState(input.State)
		if err != nil {
			return LineupView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		state = parsed
	}

	summary, err := s.resolveTraining(ctx, input.TrainingID)
	if err != nil {
		return LineupView{}, err
	}

	created, err := s.lineupRepo.Create(ctx, lineup.Lineup{TrainingID: input.TrainingID, State: state})
	if err != nil {
		s.logger.WarnContext(ctx, "create lineup rejected", "training_id", input.TrainingID, "error", err)
		return LineupView{}, classify("create lineup", err)
	}

	s.logger.InfoContext(ctx, "lineup created",
		"lineup_id", created.ID,
		"training_id", created.TrainingID,
		"state", string(created.State),
	)
	return LineupView{Lineup: created, Training: summary}, nil
}

// Get returns the stored lineup without resolving its training.
func (s *LineupService) Get(ctx context.Context, id int64) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Get")
	defer span.End()

	if id <= 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByID(ctx, id)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, classify("get lineup", fmt.Errorf("%w: id=%d", lineup.ErrNotFound, id))
	}
	return item, nil
}

func (s *LineupService) GetView(ctx context.Context, id int64) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetView")
	defer span.End()

	item, err := s.Get(ctx, id)
	if err != nil {
		return LineupView{}, err
	}

	views, err := s.describe(ctx, []lineup.Lineup{item})
	if err != nil {
		return LineupView{}, err
	}
	return views[0], nil
}

func (s *LineupService) GetByTraining(ctx context.Context, trainingID int64) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetByTraining")
	defer span.End()

	if trainingID <= 0 {
		return LineupView{}, fmt.Errorf("%w: training id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByTraining(ctx, trainingID)
	if err != nil {
		return LineupView{}, fmt.Errorf("get lineup by training: %w", err)
	}
	if !exists {
		return LineupView{}, classify("get lineup by training", fmt.Errorf("%w: training=%d", lineup.ErrNotFound, trainingID))
	}

	views, err := s.describe(ctx, []lineup.Lineup{item})
	if err != nil {
		return LineupView{}, err
	}
	return views[0], nil
}

func (s *LineupService) ListByState(ctx context.Context, state lineup.State) ([]LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.ListByState")
	defer span.End()

	items, err := s.lineupRepo.ListByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("list lineups by state: %w", err)
	}
	return s.describe(ctx, items)
}

// List applies the GET /lineups filters. A training filter yields at most one
// lineup and fails with not found when the training has none; combined with a
// state filter, a lineup in another state yields an empty result.
func (s *LineupService) List(ctx context.Context, filter ListLineupsFilter) ([]LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.List")
	defer span.End()

	var state lineup.State
	if strings.TrimSpace(filter.State) != "" {
		parsed, err := lineup.ParseState(filter.State)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		state = parsed
	}

	switch {
	case filter.TrainingID != 0:
		view, err := s.GetByTraining(ctx, filter.TrainingID)
		if err != nil {
			return nil, err
		}
		if state != "" && view.Lineup.State != state {
			return []LineupView{}, nil
		}
		return []LineupView{view}, nil
	case state != "":
		return s.ListByState(ctx, state)
	default:
		items, err := s.lineupRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list lineups: %w", err)
		}
		return s.describe(ctx, items)
	}
}

func (s *LineupService) Update(ctx context.Context, id int64, input SaveLineupInput) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Update")
	defer span.End()

	started := time.Now()
	view, err := s.update(ctx, id, input)
	observe(s.observer, "lineup", "update", started, err)
	return view, err
}

func (s *LineupService) update(ctx context.Context, id int64, input SaveLineupInput) (LineupView, error) {
	if input.TrainingID <= 0 {
		return LineupView{}, fmt.Errorf("%w: training id must be > 0", ErrInvalidInput)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return LineupView{}, err
	}

	state := current.State
	if strings.TrimSpace(input.State) != "" {
		parsed, err := lineup.ParseState(input.State)
		if err != nil {
			return LineupView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		state = parsed
	}

	summary, err := s.resolveTraining(ctx, input.TrainingID)
	if err != nil {
		return LineupView{}, err
	}

	updated, err := s.lineupRepo.Update(ctx, lineup.Lineup{
		ID:         current.ID,
		TrainingID: input.TrainingID,
		State:      state,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "update lineup rejected", "lineup_id", id, "training_id", input.TrainingID, "error", err)
		return LineupView{}, classify("update lineup", err)
	}

	s.logger.InfoContext(ctx, "lineup updated",
		"lineup_id", updated.ID,
		"training_id", updated.TrainingID,
		"from_state", string(current.State),
		"to_state", string(updated.State),
	)
	return LineupView{Lineup: updated, Training: summary}, nil
}

// Delete removes a lineup. Lineups that still own seats are rejected with
// lineup.ErrHasSeats; seats are never removed implicitly.
func (s *LineupService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Delete")
	defer span.End()

	started := time.Now()
	err := s.delete(ctx, id)
	observe(s.observer, "lineup", "delete", started, err)
	return err
}

func (s *LineupService) delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: lineup id must be > 0", ErrInvalidInput)
	}
	if err := s.lineupRepo.Delete(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "delete lineup rejected", "lineup_id", id, "error", err)
		return classify("delete lineup", err)
	}

	s.logger.InfoContext(ctx, "lineup deleted", "lineup_id", id)
	return nil
}

func (s *LineupService) resolveTraining(ctx context.Context, id int64) (training.Summary, error) {
	item, exists, err := s.trainingLookup.GetByID(ctx, id)
	if err != nil {
		return training.Summary{}, fmt.Errorf("%w: resolve training %d: %v", ErrDependencyUnavailable, id, err)
	}
	if !exists {
		return training.Summary{}, classify("resolve training", fmt.Errorf("%w: id=%d", training.ErrNotFound, id))
	}
	return item, nil
}

// describe resolves the training of every lineup. A training that no longer
// resolves is rendered with its id only.
func (s *LineupService) describe(ctx context.Context, items []lineup.Lineup) ([]LineupView, error) {
	views := make([]LineupView, len(items))
	err := resolveAll(ctx, s.enrichWorkers, len(items), func(ctx context.Context, i int) error {
		item := items[i]
		summary, exists, err := s.trainingLookup.GetByID(ctx, item.TrainingID)
		if err != nil {
			return fmt.Errorf("%w: resolve training %d: %v", ErrDependencyUnavailable, item.TrainingID, err)
		}
		if !exists {
			s.logger.WarnContext(ctx, "lineup training missing", "lineup_id", item.ID, "training_id", item.TrainingID)
			summary = training.Summary{ID: item.TrainingID}
		}
		views[i] = LineupView{Lineup: item, Training: summary}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

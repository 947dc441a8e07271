package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/dragon-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dragon-lineup/internal/domain/person"
	"github.com/riskibarqy/dragon-lineup/internal/domain/seat"
	"github.com/riskibarqy/dragon-lineup/internal/platform/logging"
)

// SaveSeatInput is the caller payload for seat create and update. An empty
// PersonID leaves the seat empty.
type SaveSeatInput struct {
	LineupID   int64
	PersonID   string
	Side       string
	SeatNumber int
}

// ListSeatsFilter narrows ListSeats. A zero LineupID lists every lineup.
type ListSeatsFilter struct {
	LineupID int64
	Side     string
}

type lineupResolver interface {
	Get(ctx context.Context, id int64) (lineup.Lineup, error)
}

// SeatService is the only writer of seat state. It resolves the lineup and
// the person before handing the placement to the registry.
type SeatService struct {
	lineups       lineupResolver
	registry      seat.Registry
	personLookup  person.Lookup
	observer      MutationObserver
	logger        *logging.Logger
	enrichWorkers int
}

func NewSeatService(
	lineups lineupResolver,
	registry seat.Registry,
	personLookup person.Lookup,
	enrichWorkers int,
	logger *logging.Logger,
) *SeatService {
	if logger == nil {
		logger = logging.Default()
	}
	if enrichWorkers <= 0 {
		enrichWorkers = defaultEnrichWorkers
	}

	return &SeatService{
		lineups:       lineups,
		registry:      registry,
		personLookup:  personLookup,
		observer:      nopObserver{},
		logger:        logger,
		enrichWorkers: enrichWorkers,
	}
}

func (s *SeatService) SetObserver(observer MutationObserver) {
	if observer == nil {
		observer = nopObserver{}
	}
	s.observer = observer
}

func (s *SeatService) CreateSeat(ctx context.Context, input SaveSeatInput) (SeatView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeatService.CreateSeat")
	defer span.End()

	started := time.Now()
	view, err := s.createSeat(ctx, input)
	observe(s.observer, "seat", "create", started, err)
	return view, err
}

func (s *SeatService) createSeat(ctx context.Context, input SaveSeatInput) (SeatView, error) {
	placement, err := placementFromInput(input)
	if err != nil {
		return SeatView{}, err
	}
	if _, err := s.lineups.Get(ctx, placement.LineupID); err != nil {
		return SeatView{}, err
	}
	occupant, err := s.resolvePerson(ctx, placement.PersonID)
	if err != nil {
		return SeatView{}, err
	}

	created, err := s.registry.Reserve(ctx, placement)
	if err != nil {
		s.logRejected(ctx, "reserve seat rejected", 0, placement, err)
		return SeatView{}, classify("reserve seat", err)
	}

	s.logger.InfoContext(ctx, "seat reserved",
		"seat_id", created.ID,
		"lineup_id", created.LineupID,
		"side", string(created.Side),
		"seat_number", created.Number,
		"empty", created.Empty(),
		"lineup_seats", s.occupancy(ctx, created.LineupID),
	)
	return SeatView{Seat: created, Person: occupant}, nil
}

// occupancy is best effort; -1 means the count could not be read.
func (s *SeatService) occupancy(ctx context.Context, lineupID int64) int {
	count, err := s.registry.CountByLineup(ctx, lineupID)
	if err != nil {
		s.logger.WarnContext(ctx, "count lineup seats failed", "lineup_id", lineupID, "error", err)
		return -1
	}
	return count
}

func (s *SeatService) UpdateSeat(ctx context.Context, seatID int64, input SaveSeatInput) (SeatView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeatService.UpdateSeat")
	defer span.End()

	started := time.Now()
	view, err := s.updateSeat(ctx, seatID, input)
	observe(s.observer, "seat", "update", started, err)
	return view, err
}

func (s *SeatService) updateSeat(ctx context.Context, seatID int64, input SaveSeatInput) (SeatView, error) {
	if seatID <= 0 {
		return SeatView{}, fmt.Errorf("%w: seat id must be > 0", ErrInvalidInput)
	}
	placement, err := placementFromInput(input)
	if err != nil {
		return SeatView{}, err
	}
	if _, err := s.lineups.Get(ctx, placement.LineupID); err != nil {
		return SeatView{}, err
	}
	occupant, err := s.resolvePerson(ctx, placement.PersonID)
	if err != nil {
		return SeatView{}, err
	}

	updated, err := s.registry.Reassign(ctx, seatID, placement)
	if err != nil {
		s.logRejected(ctx, "reassign seat rejected", seatID, placement, err)
		return SeatView{}, classify("reassign seat", err)
	}

	s.logger.InfoContext(ctx, "seat reassigned",
		"seat_id", updated.ID,
		"lineup_id", updated.LineupID,
		"side", string(updated.Side),
		"seat_number", updated.Number,
		"empty", updated.Empty(),
	)
	return SeatView{Seat: updated, Person: occupant}, nil
}

func (s *SeatService) DeleteSeat(ctx context.Context, seatID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeatService.DeleteSeat")
	defer span.End()

	started := time.Now()
	err := s.deleteSeat(ctx, seatID)
	observe(s.observer, "seat", "delete", started, err)
	return err
}

func (s *SeatService) deleteSeat(ctx context.Context, seatID int64) error {
	if seatID <= 0 {
		return fmt.Errorf("%w: seat id must be > 0", ErrInvalidInput)
	}
	if err := s.registry.Release(ctx, seatID); err != nil {
		return classify("release seat", err)
	}

	s.logger.InfoContext(ctx, "seat released", "seat_id", seatID)
	return nil
}

func (s *SeatService) GetSeat(ctx context.Context, seatID int64) (SeatView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeatService.GetSeat")
	defer span.End()

	if seatID <= 0 {
		return SeatView{}, fmt.Errorf("%w: seat id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.registry.Get(ctx, seatID)
	if err != nil {
		return SeatView{}, fmt.Errorf("get seat: %w", err)
	}
	if !exists {
		return SeatView{}, classify("get seat", fmt.Errorf("%w: id=%d", seat.ErrNotFound, seatID))
	}

	views, err := s.enrich(ctx, []seat.Seat{item})
	if err != nil {
		return SeatView{}, err
	}
	return views[0], nil
}

// ListSeats lists seats ordered by side then seat number. Without a lineup
// filter the result spans all lineups, ordered by lineup first.
func (s *SeatService) ListSeats(ctx context.Context, filter ListSeatsFilter) ([]SeatView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeatService.ListSeats")
	defer span.End()

	if filter.LineupID < 0 {
		return nil, fmt.Errorf("%w: lineup id must be > 0", ErrInvalidInput)
	}
	var side seat.Side
	if strings.TrimSpace(filter.Side) != "" {
		parsed, err := seat.ParseSide(filter.Side)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		side = parsed
	}

	var (
		items []seat.Seat
		err   error
	)
	if filter.LineupID == 0 {
		items, err = s.registry.List(ctx)
		items = filterSide(items, side)
	} else {
		items, err = s.registry.ListByLineup(ctx, filter.LineupID, side)
	}
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}

	return s.enrich(ctx, items)
}

func (s *SeatService) resolvePerson(ctx context.Context, id uuid.NullUUID) (*person.Summary, error) {
	if !id.Valid {
		return nil, nil
	}

	item, exists, err := s.personLookup.GetByID(ctx, id.UUID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve person %s: %v", ErrDependencyUnavailable, id.UUID, err)
	}
	if !exists {
		return nil, classify("resolve person", fmt.Errorf("%w: id=%s", person.ErrNotFound, id.UUID))
	}
	return &item, nil
}

// enrich resolves every distinct occupant once. An occupant the person
// collaborator no longer knows is shown as an empty seat.
func (s *SeatService) enrich(ctx context.Context, items []seat.Seat) ([]SeatView, error) {
	ids := make([]uuid.UUID, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		if !item.PersonID.Valid {
			continue
		}
		if _, seen := index[item.PersonID.UUID]; seen {
			continue
		}
		index[item.PersonID.UUID] = len(ids)
		ids = append(ids, item.PersonID.UUID)
	}

	resolved := make([]*person.Summary, len(ids))
	err := resolveAll(ctx, s.enrichWorkers, len(ids), func(ctx context.Context, i int) error {
		item, exists, err := s.personLookup.GetByID(ctx, ids[i])
		if err != nil {
			return fmt.Errorf("%w: resolve person %s: %v", ErrDependencyUnavailable, ids[i], err)
		}
		if !exists {
			s.logger.WarnContext(ctx, "seat occupant missing", "person_id", ids[i].String())
			return nil
		}
		resolved[i] = &item
		return nil
	})
	if err != nil {
		return nil, err
	}

	views := make([]SeatView, 0, len(items))
	for _, item := range items {
		view := SeatView{Seat: item}
		if item.PersonID.Valid {
			view.Person = resolved[index[item.PersonID.UUID]]
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *SeatService) logRejected(ctx context.Context, msg string, seatID int64, p seat.Placement, err error) {
	s.logger.WarnContext(ctx, msg,
		"seat_id", seatID,
		"lineup_id", p.LineupID,
		"side", string(p.Side),
		"seat_number", p.Number,
		"error", err,
	)
}

func placementFromInput(input SaveSeatInput) (seat.Placement, error) {
	if input.LineupID <= 0 {
		return seat.Placement{}, fmt.Errorf("%w: lineup id must be > 0", ErrInvalidInput)
	}
	side, err := seat.ParseSide(input.Side)
	if err != nil {
		return seat.Placement{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var personID uuid.NullUUID
	if raw := strings.TrimSpace(input.PersonID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return seat.Placement{}, fmt.Errorf("%w: person id %q is not a uuid", ErrInvalidInput, raw)
		}
		personID = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	placement := seat.Placement{
		LineupID: input.LineupID,
		Side:     side,
		Number:   input.SeatNumber,
		PersonID: personID,
	}
	if err := placement.Validate(); err != nil {
		return seat.Placement{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return placement, nil
}

func filterSide(items []seat.Seat, side seat.Side) []seat.Seat {
	if side == "" {
		return items
	}
	out := make([]seat.Seat, 0, len(items))
	for _, item := range items {
		if item.Side == side {
			out = append(out, item)
		}
	}
	return out
}

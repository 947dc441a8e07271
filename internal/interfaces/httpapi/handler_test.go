package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/dragon-lineup/internal/domain/user"
	"github.com/riskibarqy/dragon-lineup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/dragon-lineup/internal/platform/logging"
	"github.com/riskibarqy/dragon-lineup/internal/platform/metrics"
	"github.com/riskibarqy/dragon-lineup/internal/usecase"
)

type apiFixture struct {
	router  http.Handler
	metrics *metrics.Metrics
}

type fixtureOptions struct {
	verifier TokenVerifier
	health   HealthChecker
}

func newAPIFixture(t *testing.T, opts fixtureOptions) apiFixture {
	t.Helper()

	store := memory.NewStore()
	persons := memory.NewPersonDirectory(memory.SeedPersons())
	trainings := memory.NewTrainingDirectory(memory.SeedTrainings())

	lineups := usecase.NewLineupService(store.Lineups(), trainings, 2, logging.NewNop())
	seats := usecase.NewSeatService(lineups, store.Seats(), persons, 2, logging.NewNop())

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	handler := NewHandler(lineups, seats, opts.health, logging.NewNop())
	router := NewRouter(handler, RouterConfig{
		Verifier:       opts.verifier,
		Logger:         logging.NewNop(),
		SwaggerEnabled: true,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	return apiFixture{router: router, metrics: m}
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func (f apiFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	if out.APIVersion != googleAPIVersion {
		t.Fatalf("expected apiVersion=%s, got %q", googleAPIVersion, out.APIVersion)
	}
	return out
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, reason string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	body := decode[any](t, rec)
	if body.Error == nil || len(body.Error.Errors) == 0 {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	if got := body.Error.Errors[0].Reason; got != reason {
		t.Fatalf("expected reason %q, got %q", reason, got)
	}
}

func (f apiFixture) createLineup(t *testing.T, trainingID int64) lineupDTO {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/v1/lineups", fmt.Sprintf(`{"trainingId":%d}`, trainingID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create lineup: status %d: %s", rec.Code, rec.Body.String())
	}
	return decode[lineupDTO](t, rec).Data
}

func seatBody(lineupID int64, person string, side string, number int) string {
	personJSON := "null"
	if person != "" {
		personJSON = `"` + person + `"`
	}
	return fmt.Sprintf(`{"lineupId":%d,"personId":%s,"side":%q,"seatNumber":%d}`, lineupID, personJSON, side, number)
}

func (f apiFixture) createSeat(t *testing.T, body string) seatDTO {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/v1/lineup-seats", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create seat: status %d: %s", rec.Code, rec.Body.String())
	}
	return decode[seatDTO](t, rec).Data
}

func TestLineupEndpoints_Lifecycle(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{})

	created := f.createLineup(t, memory.TrainingIDMonday)
	if created.State != "DRAFT" {
		t.Fatalf("expected default state DRAFT, got %q", created.State)
	}
	if created.Training.ID != memory.TrainingIDMonday || created.Training.Team == nil || created.Training.Team.Name != "Harbour Dragons" {
		t.Fatalf("unexpected training summary: %+v", created.Training)
	}
	if created.Training.Location == nil || created.Training.Location.Name != "North Quay Boathouse" {
		t.Fatalf("unexpected location: %+v", created.Training.Location)
	}

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/v1/lineups/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get lineup: status %d", rec.Code)
	}
	if got := decode[lineupDTO](t, rec).Data; got.ID != created.ID {
		t.Fatalf("expected lineup %d, got %d", created.ID, got.ID)
	}

	rec = f.do(t, http.MethodPut, fmt.Sprintf("/v1/lineups/%d", created.ID),
		fmt.Sprintf(`{"trainingId":%d,"state":"PUBLISHED"}`, memory.TrainingIDMonday))
	if rec.Code != http.StatusOK {
		t.Fatalf("publish lineup: status %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[lineupDTO](t, rec).Data; got.State != "PUBLISHED" {
		t.Fatalf("expected PUBLISHED, got %q", got.State)
	}

	rec = f.do(t, http.MethodGet, "/v1/lineups?state=PUBLISHED", "")
	if got := decode[[]lineupDTO](t, rec).Data; len(got) != 1 || got[0].ID != created.ID {
		t.Fatalf("unexpected published list: %+v", got)
	}
	rec = f.do(t, http.MethodGet, "/v1/lineups?state=DRAFT", "")
	if got := decode[[]lineupDTO](t, rec).Data; len(got) != 0 {
		t.Fatalf("expected no drafts, got %+v", got)
	}

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/v1/lineups/%d", created.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete lineup: status %d: %s", rec.Code, rec.Body.String())
	}
	expectError(t, f.do(t, http.MethodGet, fmt.Sprintf("/v1/lineups/%d", created.ID), ""), http.StatusNotFound, "lineupNotFound")
	expectError(t, f.do(t, http.MethodDelete, fmt.Sprintf("/v1/lineups/%d", created.ID), ""), http.StatusNotFound, "lineupNotFound")
}

func TestLineupEndpoints_Rejections(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{})
	existing := f.createLineup(t, memory.TrainingIDMonday)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		reason string
	}{
		{"duplicate training", http.MethodPost, "/v1/lineups", `{"trainingId":1}`, http.StatusConflict, "duplicateLineup"},
		{"unknown training", http.MethodPost, "/v1/lineups", `{"trainingId":404}`, http.StatusNotFound, "trainingNotFound"},
		{"missing training id", http.MethodPost, "/v1/lineups", `{"state":"DRAFT"}`, http.StatusBadRequest, "invalidInput"},
		{"unknown state", http.MethodPost, "/v1/lineups", `{"trainingId":2,"state":"ARCHIVED"}`, http.StatusBadRequest, "invalidInput"},
		{"unknown field", http.MethodPost, "/v1/lineups", `{"trainingId":2,"boat":"A"}`, http.StatusBadRequest, "invalidInput"},
		{"malformed json", http.MethodPost, "/v1/lineups", `{"trainingId":`, http.StatusBadRequest, "invalidInput"},
		{"bad state filter", http.MethodGet, "/v1/lineups?state=LIVE", "", http.StatusBadRequest, "invalidInput"},
		{"bad training filter", http.MethodGet, "/v1/lineups?trainingId=abc", "", http.StatusBadRequest, "invalidInput"},
		{"training without lineup", http.MethodGet, "/v1/lineups?trainingId=2", "", http.StatusNotFound, "lineupNotFound"},
		{"non numeric id", http.MethodGet, "/v1/lineups/first", "", http.StatusBadRequest, "invalidInput"},
		{"update unknown lineup", http.MethodPut, "/v1/lineups/999", `{"trainingId":2}`, http.StatusNotFound, "lineupNotFound"},
		{"zero lineup id", http.MethodPut, "/v1/lineups/0", `{"trainingId":1}`, http.StatusBadRequest, "invalidInput"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expectError(t, f.do(t, tc.method, tc.path, tc.body), tc.status, tc.reason)
		})
	}

	second := f.createLineup(t, memory.TrainingIDWednesday)
	rec := f.do(t, http.MethodPut, fmt.Sprintf("/v1/lineups/%d", second.ID), fmt.Sprintf(`{"trainingId":%d}`, memory.TrainingIDMonday))
	expectError(t, rec, http.StatusConflict, "duplicateLineup")

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/v1/lineups?trainingId=%d", memory.TrainingIDMonday), "")
	if got := decode[[]lineupDTO](t, rec).Data; len(got) != 1 || got[0].ID != existing.ID {
		t.Fatalf("pre-existing lineup changed: %+v", got)
	}
	rec = f.do(t, http.MethodGet, fmt.Sprintf("/v1/lineups?trainingId=%d&state=PUBLISHED", memory.TrainingIDMonday), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode[[]lineupDTO](t, rec).Data; len(got) != 0 {
		t.Fatalf("expected empty result for state mismatch, got %+v", got)
	}
}

func TestSeatEndpoints_OccupiedSlotAndPersonOnce(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{})
	l1 := f.createLineup(t, memory.TrainingIDMonday)

	first := f.createSeat(t, seatBody(l1.ID, memory.PersonIDAnna.String(), "L", 1))
	if first.Person == nil || first.Person.Name != "Anna Novak" {
		t.Fatalf("expected Anna on seat, got %+v", first.Person)
	}

	rec := f.do(t, http.MethodPost, "/v1/lineup-seats", seatBody(l1.ID, memory.PersonIDBoris.String(), "L", 1))
	expectError(t, rec, http.StatusConflict, "seatOccupied")

	rec = f.do(t, http.MethodPost, "/v1/lineup-seats", seatBody(l1.ID, memory.PersonIDAnna.String(), "R", 1))
	expectError(t, rec, http.StatusConflict, "personAlreadySeated")

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/v1/lineup-seats?lineupId=%d", l1.ID), "")
	if got := decode[[]seatDTO](t, rec).Data; len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("expected only the first seat, got %+v", got)
	}

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/v1/lineups/%d", l1.ID), "")
	expectError(t, rec, http.StatusConflict, "lineupHasSeats")
}

func TestSeatEndpoints_ListIncludesEmptySeatsInOrder(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{})
	l1 := f.createLineup(t, memory.TrainingIDMonday)

	f.createSeat(t, seatBody(l1.ID, "", "L", 2))
	f.createSeat(t, seatBody(l1.ID, memory.PersonIDAnna.String(), "L", 1))
	f.createSeat(t, `{"lineupId":`+fmt.Sprint(l1.ID)+`,"side":"R","seatNumber":1}`)

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/v1/lineup-seats?lineupId=%d&side=L", l1.ID), "")
	got := decode[[]seatDTO](t, rec).Data
	if len(got) != 2 {
		t.Fatalf("expected two left seats, got %+v", got)
	}
	if got[0].SeatNumber != 1 || got[0].Person == nil || got[0].Person.ID != memory.PersonIDAnna.String() {
		t.Fatalf("expected Anna on L1 first, got %+v", got[0])
	}
	if got[1].SeatNumber != 2 || got[1].Person != nil {
		t.Fatalf("expected empty L2 second, got %+v", got[1])
	}
	if !strings.Contains(rec.Body.String(), `"person":null`) {
		t.Fatalf("expected empty seat to render person as null: %s", rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/v1/lineup-seats", "")
	if all := decode[[]seatDTO](t, rec).Data; len(all) != 3 {
		t.Fatalf("expected three seats overall, got %d", len(all))
	}

	expectError(t, f.do(t, http.MethodGet, "/v1/lineup-seats?side=X", ""), http.StatusBadRequest, "invalidInput")
}

func TestSeatEndpoints_MoveFreesPreviousSlot(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{})
	l1 := f.createLineup(t, memory.TrainingIDMonday)
	seatA := f.createSeat(t, seatBody(l1.ID, memory.PersonIDAnna.String(), "L", 1))

	rec := f.do(t, http.MethodPut, fmt.Sprintf("/v1/lineup-seats/%d", seatA.ID), seatBody(l1.ID, memory.PersonIDAnna.String(), "L", 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("self reassign: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPut, fmt.Sprintf("/v1/lineup-seats/%d", seatA.ID), seatBody(l1.ID, memory.PersonIDAnna.String(), "L", 2))
	if rec.Code != http.StatusOK {
		t.Fatalf("move seat: status %d: %s", rec.Code, rec.Body.String())
	}
	if moved := decode[seatDTO](t, rec).Data; moved.SeatNumber != 2 {
		t.Fatalf("expected seat number 2, got %d", moved.SeatNumber)
	}

	f.createSeat(t, seatBody(l1.ID, memory.PersonIDBoris.String(), "L", 1))

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/v1/lineup-seats/%d", seatA.ID), "")
	if got := decode[seatDTO](t, rec).Data; got.SeatNumber != 2 || got.Person == nil {
		t.Fatalf("unexpected moved seat: %+v", got)
	}
}

func TestSeatEndpoints_Rejections(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{})
	l1 := f.createLineup(t, memory.TrainingIDMonday)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		reason string
	}{
		{"unknown lineup", http.MethodPost, "/v1/lineup-seats", seatBody(999, "", "L", 1), http.StatusNotFound, "lineupNotFound"},
		{"unknown person", http.MethodPost, "/v1/lineup-seats", seatBody(l1.ID, "8d1e0c4a-0000-4000-8000-000000000000", "L", 1), http.StatusNotFound, "personNotFound"},
		{"bad person id", http.MethodPost, "/v1/lineup-seats", seatBody(l1.ID, "anna", "L", 1), http.StatusBadRequest, "invalidInput"},
		{"bad side", http.MethodPost, "/v1/lineup-seats", seatBody(l1.ID, "", "M", 1), http.StatusBadRequest, "invalidInput"},
		{"zero seat number", http.MethodPost, "/v1/lineup-seats", seatBody(l1.ID, "", "L", 0), http.StatusBadRequest, "invalidInput"},
		{"seat number overflow", http.MethodPost, "/v1/lineup-seats", seatBody(l1.ID, "", "L", 40000), http.StatusBadRequest, "invalidInput"},
		{"missing lineup id", http.MethodPost, "/v1/lineup-seats", `{"side":"L","seatNumber":1}`, http.StatusBadRequest, "invalidInput"},
		{"get unknown seat", http.MethodGet, "/v1/lineup-seats/999", "", http.StatusNotFound, "seatNotFound"},
		{"update unknown seat", http.MethodPut, "/v1/lineup-seats/999", seatBody(l1.ID, "", "L", 3), http.StatusNotFound, "seatNotFound"},
		{"delete unknown seat", http.MethodDelete, "/v1/lineup-seats/999", "", http.StatusNotFound, "seatNotFound"},
		{"negative seat id", http.MethodDelete, "/v1/lineup-seats/-1", "", http.StatusBadRequest, "invalidInput"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expectError(t, f.do(t, tc.method, tc.path, tc.body), tc.status, tc.reason)
		})
	}

	seatA := f.createSeat(t, seatBody(l1.ID, "", "L", 1))
	rec := f.do(t, http.MethodDelete, fmt.Sprintf("/v1/lineup-seats/%d", seatA.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete seat: status %d", rec.Code)
	}
	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/v1/lineups/%d", l1.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete emptied lineup: status %d: %s", rec.Code, rec.Body.String())
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthz(t *testing.T) {
	healthy := newAPIFixture(t, fixtureOptions{health: pingFunc(func(context.Context) error { return nil })})
	if rec := healthy.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	down := newAPIFixture(t, fixtureOptions{health: pingFunc(func(context.Context) error { return errors.New("connection refused") })})
	expectError(t, down.do(t, http.MethodGet, "/healthz", ""), http.StatusServiceUnavailable, "dependencyUnavailable")
}

func TestDocsAndMetricsRoutes(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{})

	rec := f.do(t, http.MethodGet, "/openapi.yaml", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Dragon Lineup API") {
		t.Fatalf("unexpected openapi response: %d", rec.Code)
	}
	rec = f.do(t, http.MethodGet, "/docs", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Fatalf("unexpected docs response: %d", rec.Code)
	}

	f.createLineup(t, memory.TrainingIDMonday)
	if got := testutil.ToFloat64(f.metrics.Requests.WithLabelValues(http.MethodPost, "POST /v1/lineups", "201")); got != 1 {
		t.Fatalf("expected one counted create request, got %v", got)
	}

	rec = f.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatalf("unexpected metrics exposition: %s", rec.Body.String())
	}
}

type stubVerifier struct {
	token     string
	principal user.Principal
}

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if token != s.token {
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	}
	return s.principal, nil
}

func TestRequireAuth(t *testing.T) {
	f := newAPIFixture(t, fixtureOptions{verifier: stubVerifier{token: "good", principal: user.Principal{UserID: "coach-1"}}})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"rejected token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/lineups", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}

	if rec := f.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz must stay open, got %d", rec.Code)
	}
}

func TestRequireAuth_PutsPrincipalInContext(t *testing.T) {
	verifier := stubVerifier{token: "good", principal: user.Principal{UserID: "coach-1"}}
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = actorID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/lineups", nil)
	req.Header.Set("Authorization", "bearer good")
	RequireAuth(verifier, next).ServeHTTP(httptest.NewRecorder(), req)

	if seen != "coach-1" {
		t.Fatalf("expected principal coach-1, got %q", seen)
	}
}

func TestRecoverPanic(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	recoverPanic(logging.NewNop(), boom).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/lineups", nil))

	expectError(t, rec, http.StatusInternalServerError, "internalError")
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("panic value leaked into response: %s", rec.Body.String())
	}
}

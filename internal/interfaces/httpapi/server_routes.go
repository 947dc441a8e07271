package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/lineups", RequireAuth(verifier, http.HandlerFunc(handler.ListLineups)))
	mux.Handle("POST /v1/lineups", RequireAuth(verifier, http.HandlerFunc(handler.CreateLineup)))
	mux.Handle("GET /v1/lineups/{lineupID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLineup)))
	mux.Handle("PUT /v1/lineups/{lineupID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLineup)))
	mux.Handle("DELETE /v1/lineups/{lineupID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteLineup)))
}

func registerLineupSeatRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/lineup-seats", RequireAuth(verifier, http.HandlerFunc(handler.ListLineupSeats)))
	mux.Handle("POST /v1/lineup-seats", RequireAuth(verifier, http.HandlerFunc(handler.CreateLineupSeat)))
	mux.Handle("GET /v1/lineup-seats/{seatID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLineupSeat)))
	mux.Handle("PUT /v1/lineup-seats/{seatID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLineupSeat)))
	mux.Handle("DELETE /v1/lineup-seats/{seatID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteLineupSeat)))
}

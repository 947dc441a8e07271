package httpapi

import (
	"net/http"

	"github.com/riskibarqy/dragon-lineup/internal/platform/logging"
)

type RouterConfig struct {
	// Verifier guards the /v1 routes; nil leaves them open.
	Verifier           TokenVerifier
	Logger             *logging.Logger
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	Metrics            RequestObserver
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled, cfg.MetricsHandler)
	registerLineupRoutes(mux, handler, cfg.Verifier)
	registerLineupSeatRoutes(mux, handler, cfg.Verifier)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, RequestMetrics(cfg.Metrics, mux)))))
}

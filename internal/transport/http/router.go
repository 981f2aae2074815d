package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"actavc/pkg/platform/middleware/auth"
	"actavc/pkg/platform/middleware/request"
)

// DefaultRequestTimeout bounds a single request. Issuing a credential waits
// on a wallet signature, so it is deliberately generous.
const DefaultRequestTimeout = 3 * time.Minute

// PublicRoutes is implemented by handlers with routes that need no session.
type PublicRoutes interface {
	Register(r chi.Router)
}

// ProtectedRoutes is implemented by handlers with routes behind a wallet session.
type ProtectedRoutes interface {
	RegisterProtected(r chi.Router)
}

// RouterConfig carries the shared collaborators of the HTTP surface.
type RouterConfig struct {
	Logger         *slog.Logger
	Sessions       auth.SessionValidator
	RequestMetrics *request.Metrics
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter builds the chi router: the shared middleware stack, public routes
// and a group whose routes require a wallet session token.
func NewRouter(cfg RouterConfig, public []PublicRoutes, protected []ProtectedRoutes) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = request.DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(request.RequestTime)
	r.Use(request.Logger(logger))
	r.Use(request.Latency(cfg.RequestMetrics, routePattern))
	r.Use(request.Timeout(timeout))
	r.Use(request.BodyLimit(maxBody))
	r.Use(request.ContentTypeJSON)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	for _, h := range public {
		h.Register(r)
	}

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireWallet(cfg.Sessions, logger))
		for _, h := range protected {
			h.RegisterProtected(pr)
		}
	})

	return r
}

// routePattern is read after the handler ran, when chi has filled in the
// matched pattern.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}

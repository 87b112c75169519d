package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/metrics"
	"github.com/aussiebroadwan/localserve/internal/identity/service"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/pkg/httpx"
	"github.com/aussiebroadwan/localserve/pkg/slogx"

	_ "github.com/aussiebroadwan/localserve/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	basePath     string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store           store.Store
	IdentityService *service.IdentityService

	// Rate limits for the public account endpoints. Zero values fall back to
	// httpx.ModerateLimit and httpx.StrictLimit.
	SignupLimit httpx.RateLimitConfig
	LoginLimit  httpx.RateLimitConfig
}

// NewRouter builds a router mounting the account routes under basePath.
// corsOrigins lists allowed browser origins; empty allows any.
func NewRouter(
	basePath, buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		basePath:     normalizeBasePath(basePath),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      m,
		logger:       logger,
	}

	// Logging wraps CORS so rejected preflights are still logged
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

func normalizeBasePath(p string) string {
	p = strings.TrimSuffix(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Local Services Identity API
//	@version		0.1.0
//	@description	Account registration, email one-time-code verification and credential checks
//	@description	for the local services marketplace. Login returns the account projection and
//	@description	issues no token.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/localserve
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:5000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.basePath + path
}

func (r *Router) registerAccounts() {
	signupLimit := r.SignupLimit
	if signupLimit.RequestsPerWindow == 0 {
		signupLimit = httpx.ModerateLimit
	}
	loginLimit := r.LoginLimit
	if loginLimit.RequestsPerWindow == 0 {
		loginLimit = httpx.StrictLimit
	}

	// POST /signup - moderate rate limit by IP (account creation sends mail)
	r.Mux.Handle(r.route(http.MethodPost, "/signup"),
		httpx.Chain(&SignupHandler{IdentityService: r.IdentityService},
			r.metrics.Instrument("signup"),
			httpx.RateLimitByIP(signupLimit),
		),
	)

	// POST /login - strict rate limit by IP + email to slow password guessing
	r.Mux.Handle(r.route(http.MethodPost, "/login"),
		httpx.Chain(&LoginHandler{IdentityService: r.IdentityService},
			r.metrics.Instrument("login"),
			httpx.RateLimitByIPAndJSONField(loginLimit, "email"),
		),
	)

	r.Mux.Handle(r.route(http.MethodPost, "/send-otp"),
		httpx.Chain(&SendOTPHandler{IdentityService: r.IdentityService},
			r.metrics.Instrument("send_otp"),
		),
	)

	r.Mux.Handle(r.route(http.MethodPost, "/verify-otp"),
		httpx.Chain(&VerifyOTPHandler{IdentityService: r.IdentityService},
			r.metrics.Instrument("verify_otp"),
		),
	)

	r.Mux.Handle(r.route(http.MethodGet, "/users/{id}"),
		httpx.Chain(&UserHandler{IdentityService: r.IdentityService},
			r.metrics.Instrument("user"),
		),
	)
}

func (r *Router) registerSystem() {
	// "GET /{$}" matches only the root, not every unknown path
	r.Mux.Handle("GET /{$}", IndexHandler())
	r.Mux.Handle("GET /health", HealthHandler())

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}

package router

import (
	"net/http"

	"github.com/dtroode/premium-server/internal/api/http/handler"
	"github.com/dtroode/premium-server/internal/api/http/middleware"
	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/metrics"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/gorilla/mux"
)

// Router wires HTTP handlers and middleware for the premium API.
type Router struct {
	identity       handler.IdentityService
	predictions    handler.PredictionService
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	rateLimiter    *middleware.RateLimiter
	trustedProxies *middleware.TrustedProxies
	healthChecks   map[string]model.HealthChecker
	allowedOrigins []string
	pathPrefix     string
	logger         *logger.Logger
}

// Options holds the dependencies of a Router.
type Options struct {
	Identity       handler.IdentityService
	Predictions    handler.PredictionService
	TokenService   middleware.TokenService
	ContextManager model.ContextManager
	RateLimiter    *middleware.RateLimiter
	TrustedProxies *middleware.TrustedProxies
	HealthChecks   map[string]model.HealthChecker
	AllowedOrigins []string
	PathPrefix     string
	Logger         *logger.Logger
}

// New creates new HTTP Router instance.
//
// Parameters:
//   - opts: The services, middleware state and settings the routes need
//
// Returns a pointer to the newly created Router instance.
func New(opts Options) *Router {
	return &Router{
		identity:       opts.Identity,
		predictions:    opts.Predictions,
		tokenService:   opts.TokenService,
		contextManager: opts.ContextManager,
		rateLimiter:    opts.RateLimiter,
		trustedProxies: opts.TrustedProxies,
		healthChecks:   opts.HealthChecks,
		allowedOrigins: opts.AllowedOrigins,
		pathPrefix:     opts.PathPrefix,
		logger:         opts.Logger,
	}
}

// Register builds the route tree and wraps it in the global middleware chain.
//
// Auth routes are public. Prediction routes require a session. Health and
// metrics live outside the path prefix and are not rate limited.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.identity, r.logger)
	predictionHandler := handler.NewPrediction(r.predictions, r.contextManager, r.logger)
	healthHandler := handler.NewHealth(r.healthChecks, r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	root := mux.NewRouter()
	root.NotFoundHandler = http.HandlerFunc(notFound)
	root.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	root.Use(metrics.InstrumentHandler)

	root.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)
	root.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix(r.pathPrefix).Subrouter()
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Handler)
	}

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/google", authHandler.Google).Methods(http.MethodPost)
	auth.HandleFunc("/send-otp", authHandler.SendOTP).Methods(http.MethodPost)
	auth.HandleFunc("/verify-otp", authHandler.VerifyOTP).Methods(http.MethodPost)

	prediction := api.PathPrefix("/prediction").Subrouter()
	prediction.Use(authenticate.Handler)
	prediction.HandleFunc("/predict", predictionHandler.Predict).Methods(http.MethodPost)
	prediction.HandleFunc("/feedback", predictionHandler.Feedback).Methods(http.MethodPost)
	prediction.HandleFunc("/history", predictionHandler.History).Methods(http.MethodGet)

	var h http.Handler = root
	h = middleware.NewCORS(r.allowedOrigins).Handler(h)
	h = middleware.SecureHeaders(h)
	h = middleware.NewLogging(r.trustedProxies, r.logger).Handler(h)
	h = middleware.NewRecover(r.logger).Handler(h)
	return h
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
}

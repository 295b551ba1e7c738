package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/premium-server/internal/api/http/context"
	"github.com/dtroode/premium-server/internal/api/http/middleware"
	"github.com/dtroode/premium-server/internal/api/http/router"
	httpServer "github.com/dtroode/premium-server/internal/api/http/server"
	"github.com/dtroode/premium-server/internal/config"
	"github.com/dtroode/premium-server/internal/google"
	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/mailer"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/dtroode/premium-server/internal/repository/memory"
	"github.com/dtroode/premium-server/internal/repository/postgres"
	"github.com/dtroode/premium-server/internal/scorer"
	"github.com/dtroode/premium-server/internal/server"
	"github.com/dtroode/premium-server/internal/service"
	storage "github.com/dtroode/premium-server/internal/storage/minio"
	"github.com/dtroode/premium-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const limiterCleanupInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	healthChecks := make(map[string]model.HealthChecker)

	var (
		accounts    model.AccountStore
		predictions model.PredictionStore
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		accounts = memory.NewAccountRepository()
		predictions = memory.NewPredictionRepository()
	default:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize storage", "error", err)
		}
		defer db.Close()

		accounts = postgres.NewAccountRepository(db)
		predictions = postgres.NewPredictionRepository(db)
		healthChecks["database"] = db
	}

	tokenManager, err := token.NewJWT(cfg.JWT.Secret)
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}

	verifier, err := google.NewVerifier(ctx, cfg.Google.ClientID)
	if err != nil {
		logger.Fatal("failed to create google verifier", "error", err)
	}

	mail, err := mailer.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		logger.Fatal("failed to create mailer", "error", err)
	}

	var sink model.SampleSink = storage.NoopSink{}
	if cfg.Storage.Enabled {
		storageClient, err := storage.NewClient(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		sink = storageClient
		healthChecks["storage"] = storageClient
	}

	validator := service.NewValidator()
	tokenService := service.NewTokenService(tokenManager, logger)
	otpService := service.NewOTP(accounts, mail, validator, logger)
	identityService := service.NewIdentity(accounts, verifier, otpService, tokenService, logger)
	predictionService := service.NewPrediction(predictions, scorer.NewClient(cfg.Scorer.URL, cfg.Scorer.Timeout), sink, validator, logger)

	trustedProxies, err := middleware.NewTrustedProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		logger.Fatal("failed to parse trusted proxies", "error", err)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, trustedProxies, logger)
	rateLimiter.StartCleanup(ctx, limiterCleanupInterval)

	r := router.New(router.Options{
		Identity:       identityService,
		Predictions:    predictionService,
		TokenService:   tokenService,
		ContextManager: httpctx.NewManager(),
		RateLimiter:    rateLimiter,
		TrustedProxies: trustedProxies,
		HealthChecks:   healthChecks,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		PathPrefix:     cfg.HTTP.PathPrefix,
		Logger:         logger,
	})
	srv := httpServer.NewHTTPServer(r.Register(), cfg.HTTP.Address, cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.KeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

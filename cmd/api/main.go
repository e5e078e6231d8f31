package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/clinic-proposal/internal/api/router"
	"github.com/wolfman30/clinic-proposal/internal/app/bootstrap"
	appconfig "github.com/wolfman30/clinic-proposal/internal/config"
	"github.com/wolfman30/clinic-proposal/internal/demo"
	"github.com/wolfman30/clinic-proposal/internal/engagement"
	httpmiddleware "github.com/wolfman30/clinic-proposal/internal/http/middleware"
	"github.com/wolfman30/clinic-proposal/internal/leads"
	"github.com/wolfman30/clinic-proposal/internal/proposal"
	"github.com/wolfman30/clinic-proposal/internal/roi"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting proposal server",
		"env", cfg.Env,
		"port", cfg.Port,
		"prepared_for", cfg.ProposalPreparedFor,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	engagementStore := bootstrap.BuildEngagementStore(redisClient)

	metricsHandler, proposalMetrics := setupMetrics()

	offer := proposal.New(
		proposal.WithPreparedFor(cfg.ProposalPreparedFor),
		proposal.WithValidUntil(cfg.ProposalValidUntil),
		proposal.WithBundlePrice(cfg.ROISetupCost, cfg.ROIMonthlyCost),
	)
	roiCfg, err := validatedROIConfig(cfg)
	if err != nil {
		logger.Error("invalid ROI configuration", "error", err)
		os.Exit(1)
	}

	notifier, err := setupNotifier(ctx, cfg, offer, logger)
	if err != nil {
		logger.Error("failed to configure lead notifications", "error", err)
		os.Exit(1)
	}

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	r := router.New(&router.Config{
		Logger: logger,
		ProposalHandler: proposal.NewHandler(offer, roiCfg, logger,
			proposal.WithMetrics(proposalMetrics),
			proposal.WithEngagement(engagementStore),
		),
		ROIHandler: roi.NewHandler(roiCfg, logger,
			roi.WithMetrics(proposalMetrics),
			roi.WithEngagement(engagementStore),
		),
		DemoHandler: demo.NewHandler(logger),
		LeadsHandler: leads.NewHandler(setupLeadsRepository(pool, logger), offer, logger,
			leads.WithNotifier(notifier),
			leads.WithMetrics(proposalMetrics),
			leads.WithEngagement(engagementStore),
			leads.WithProposalID(offer.PreparedFor),
		),
		EngagementHandler:  engagement.NewHandler(engagementStore, logger),
		LeadRateLimiter:    limiter,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
		HealthChecks:       healthChecks(pool, redisClient),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

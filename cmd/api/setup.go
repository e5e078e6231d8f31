package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/clinic-proposal/cmd/mainconfig"
	"github.com/wolfman30/clinic-proposal/internal/api/router"
	"github.com/wolfman30/clinic-proposal/internal/app/bootstrap"
	appconfig "github.com/wolfman30/clinic-proposal/internal/config"
	"github.com/wolfman30/clinic-proposal/internal/leads"
	"github.com/wolfman30/clinic-proposal/internal/notify"
	"github.com/wolfman30/clinic-proposal/internal/observability/metrics"
	"github.com/wolfman30/clinic-proposal/internal/proposal"
	"github.com/wolfman30/clinic-proposal/internal/roi"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

// setupMetrics builds a dedicated registry so /metrics only exposes the
// proposal collectors plus the Go runtime.
func setupMetrics() (http.Handler, *metrics.ProposalMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewProposalMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}

// connectPostgresPool returns nil when no DATABASE_URL is configured or the
// database cannot be reached; leads then stay in memory.
func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(databaseURL) == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres unreachable", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("connected to postgres")
	return pool
}

// validatedROIConfig refuses to start with assumptions every projection
// would reject.
func validatedROIConfig(cfg *appconfig.Config) (roi.Config, error) {
	roiCfg := cfg.ROIConfig()
	if err := roiCfg.Validate(); err != nil {
		return roi.Config{}, fmt.Errorf("ROI_UPLIFT_FACTOR/ROI_SETUP_COST/ROI_MONTHLY_COST: %w", err)
	}
	return roiCfg, nil
}

func setupLeadsRepository(pool *pgxpool.Pool, logger *logging.Logger) leads.Repository {
	if pool == nil {
		logger.Warn("DATABASE_URL not set; leads are kept in memory")
		return leads.NewInMemoryRepository()
	}
	return leads.NewPostgresRepository(pool)
}

func setupNotifier(ctx context.Context, cfg *appconfig.Config, p proposal.Proposal, logger *logging.Logger) (*notify.Notifier, error) {
	loadAWS := func(ctx context.Context) (aws.Config, error) { return mainconfig.LoadAWSConfig(ctx, cfg) }
	sender, err := bootstrap.BuildEmailSender(ctx, cfg, loadAWS, mainconfig.SESSenderFactory(cfg, logger), logger)
	if err != nil {
		return nil, err
	}

	planNames := make(map[string]string, len(p.Plans)+1)
	for _, plan := range p.Plans {
		planNames[plan.ID] = plan.Name
	}
	planNames[p.Bundle.ID] = p.Bundle.Name

	return notify.NewNotifier(sender, notify.NotifierConfig{
		To:        cfg.SalesNotifyEmail,
		BaseURL:   cfg.PublicBaseURL,
		PlanNames: planNames,
	}, logger), nil
}

func healthChecks(pool *pgxpool.Pool, redisClient *redis.Client) map[string]router.HealthCheck {
	checks := map[string]router.HealthCheck{}
	if pool != nil {
		checks["postgres"] = pool.Ping
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	return checks
}

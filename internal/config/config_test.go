package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ROI_UPLIFT_FACTOR", "")
	t.Setenv("PROPOSAL_VALID_UNTIL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	roiCfg := cfg.ROIConfig()
	if roiCfg.UpliftFactor != 1.5 || roiCfg.SetupCost != 60000 || roiCfg.MonthlyRecurringCost != 7000 {
		t.Fatalf("unexpected default roi config %+v", roiCfg)
	}
	if !cfg.ProposalValidUntil.Equal(DefaultValidUntil) {
		t.Fatalf("expected default validity, got %s", cfg.ProposalValidUntil)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.EmailProvider != "none" {
		t.Fatalf("expected email provider none, got %s", cfg.EmailProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("ROI_UPLIFT_FACTOR", "1.8")
	t.Setenv("ROI_SETUP_COST", "45000")
	t.Setenv("ROI_MONTHLY_COST", "5000")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("PROPOSAL_VALID_UNTIL", "2026-01-15")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	cfg := Load()
	if !cfg.TrustProxyHeaders {
		t.Fatalf("expected proxy headers to be trusted")
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	roiCfg := cfg.ROIConfig()
	if roiCfg.UpliftFactor != 1.8 || roiCfg.SetupCost != 45000 || roiCfg.MonthlyRecurringCost != 5000 {
		t.Fatalf("unexpected roi overrides %+v", roiCfg)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected normalized email provider, got %s", cfg.EmailProvider)
	}
	want := time.Date(2026, time.January, 15, 23, 59, 59, 0, time.UTC)
	if !cfg.ProposalValidUntil.Equal(want) {
		t.Fatalf("expected validity %s, got %s", want, cfg.ProposalValidUntil)
	}
}

func TestLoadValidUntilRFC3339(t *testing.T) {
	t.Setenv("PROPOSAL_VALID_UNTIL", "2025-12-01T12:00:00-03:00")
	cfg := Load()
	if cfg.ProposalValidUntil.UTC().Hour() != 15 {
		t.Fatalf("expected 15:00 UTC, got %s", cfg.ProposalValidUntil.UTC())
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ROI_UPLIFT_FACTOR", "lots")
	t.Setenv("PROPOSAL_VALID_UNTIL", "next tuesday")
	cfg := Load()
	if cfg.ROIUpliftFactor != 1.5 {
		t.Fatalf("expected default uplift, got %v", cfg.ROIUpliftFactor)
	}
	if !cfg.ProposalValidUntil.Equal(DefaultValidUntil) {
		t.Fatalf("expected default validity, got %s", cfg.ProposalValidUntil)
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wolfman30/clinic-proposal/internal/roi"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	PublicBaseURL      string
	LogLevel           string
	CORSAllowedOrigins []string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	RedisTLS           bool
	AdminJWTSecret     string
	RateLimitRPS       float64
	RateLimitBurst     int
	TrustProxyHeaders  bool

	// ROI simulator assumptions
	ROIUpliftFactor float64
	ROISetupCost    float64
	ROIMonthlyCost  float64

	// Proposal
	ProposalPreparedFor string
	ProposalValidUntil  time.Time

	// Notifications
	SalesNotifyEmail  string
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string

	// AWS (SES)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// DefaultValidUntil is the last second the offer is honored.
var DefaultValidUntil = time.Date(2025, time.October, 31, 23, 59, 59, 0, time.UTC)

// Load reads configuration from environment variables
func Load() *Config {
	defaults := roi.DefaultConfig()
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
		TrustProxyHeaders:  getEnvAsBool("TRUST_PROXY_HEADERS", false),

		ROIUpliftFactor: getEnvAsFloat("ROI_UPLIFT_FACTOR", defaults.UpliftFactor),
		ROISetupCost:    getEnvAsFloat("ROI_SETUP_COST", defaults.SetupCost),
		ROIMonthlyCost:  getEnvAsFloat("ROI_MONTHLY_COST", defaults.MonthlyRecurringCost),

		ProposalPreparedFor: getEnv("PROPOSAL_PREPARED_FOR", "CM Remédios"),
		ProposalValidUntil:  getEnvAsTime("PROPOSAL_VALID_UNTIL", DefaultValidUntil),

		SalesNotifyEmail:  getEnv("SALES_NOTIFY_EMAIL", ""),
		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "none"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Proposta Comercial"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// ROIConfig returns the simulator assumptions.
func (c *Config) ROIConfig() roi.Config {
	return roi.Config{
		UpliftFactor:         c.ROIUpliftFactor,
		SetupCost:            c.ROISetupCost,
		MonthlyRecurringCost: c.ROIMonthlyCost,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsTime accepts RFC3339 or a bare date; a bare date means the end of that day in UTC.
func getEnvAsTime(key string, defaultValue time.Time) time.Time {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.Parse(time.RFC3339, valueStr); err == nil {
		return value
	}
	if value, err := time.Parse(time.DateOnly, valueStr); err == nil {
		return value.Add(24*time.Hour - time.Second)
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/clinic-proposal/internal/demo"
	"github.com/wolfman30/clinic-proposal/internal/engagement"
	httpmiddleware "github.com/wolfman30/clinic-proposal/internal/http/middleware"
	"github.com/wolfman30/clinic-proposal/internal/leads"
	"github.com/wolfman30/clinic-proposal/internal/proposal"
	"github.com/wolfman30/clinic-proposal/internal/roi"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ProposalHandler    *proposal.Handler
	ROIHandler         *roi.Handler
	DemoHandler        *demo.Handler
	LeadsHandler       *leads.Handler
	EngagementHandler  *engagement.Handler
	LeadRateLimiter    *httpmiddleware.RateLimiter
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	// TrustProxyHeaders takes the client address from X-Forwarded-For /
	// X-Real-IP. Only enable behind a proxy that overwrites them.
	TrustProxyHeaders  bool
	HealthChecks       map[string]HealthCheck
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthHandler(cfg.HealthChecks))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ProposalHandler != nil {
		r.Get("/", cfg.ProposalHandler.RenderPage)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.ProposalHandler != nil {
			api.Get("/proposal", cfg.ProposalHandler.GetProposal)
		}
		if cfg.ROIHandler != nil {
			api.Get("/roi/defaults", cfg.ROIHandler.GetDefaults)
			api.Post("/roi/projections", cfg.ROIHandler.CreateProjection)
		}
		if cfg.DemoHandler != nil {
			api.Mount("/demo", cfg.DemoHandler.Routes())
		}
		if cfg.LeadsHandler != nil {
			api.Group(func(public chi.Router) {
				if cfg.LeadRateLimiter != nil {
					public.Use(cfg.LeadRateLimiter.Middleware)
				}
				public.Post("/leads", cfg.LeadsHandler.CreateLead)
			})
		}
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
		if cfg.LeadsHandler != nil {
			admin.Get("/leads", cfg.LeadsHandler.ListLeads)
			admin.Get("/leads/{leadID}", cfg.LeadsHandler.GetLead)
		}
		if cfg.EngagementHandler != nil {
			admin.Get("/engagement", cfg.EngagementHandler.GetSnapshot)
		}
	})

	return r
}

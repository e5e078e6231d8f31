package roi

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/clinic-proposal/internal/engagement"
	"github.com/wolfman30/clinic-proposal/internal/locale"
	"github.com/wolfman30/clinic-proposal/internal/observability/metrics"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

var roiTracer = otel.Tracer("proposal.internal.roi")

const maxProjectionBodyBytes = 4 << 10

// Handler serves the ROI simulator.
type Handler struct {
	cfg        Config
	format     *locale.Formatter
	metrics    *metrics.ProposalMetrics
	engagement engagement.Store
	logger     *logging.Logger
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithMetrics records projection counters and latency.
func WithMetrics(m *metrics.ProposalMetrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithEngagement counts each simulation.
func WithEngagement(store engagement.Store) HandlerOption {
	return func(h *Handler) { h.engagement = store }
}

// NewHandler creates a simulator handler using cfg for uplift and default costs.
func NewHandler(cfg Config, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		cfg:    cfg,
		format: locale.BRL(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ProjectionRequest is the body of POST /api/roi/projections. Omitted costs
// fall back to the configured offer.
type ProjectionRequest struct {
	MonthlyLeads             int      `json:"monthly_leads"`
	CurrentConversionRatePct float64  `json:"current_conversion_rate_pct"`
	AverageTicket            float64  `json:"average_ticket"`
	SetupCost                *float64 `json:"setup_cost,omitempty"`
	MonthlyRecurringCost     *float64 `json:"monthly_recurring_cost,omitempty"`
}

// Input resolves the request against cfg.
func (r ProjectionRequest) Input(cfg Config) Input {
	in := cfg.Input(r.MonthlyLeads, r.CurrentConversionRatePct, r.AverageTicket)
	if r.SetupCost != nil {
		in.SetupCost = *r.SetupCost
	}
	if r.MonthlyRecurringCost != nil {
		in.MonthlyRecurringCost = *r.MonthlyRecurringCost
	}
	return in
}

// Formatted holds display strings for a Result.
type Formatted struct {
	ProjectedConversionRate   string `json:"projected_conversion_rate"`
	IncrementalMonthlyRevenue string `json:"incremental_monthly_revenue"`
	IncrementalAnnualRevenue  string `json:"incremental_annual_revenue"`
	ExtraMonthlyAppointments  string `json:"extra_monthly_appointments"`
	FirstYearTotalCost        string `json:"first_year_total_cost"`
	FirstYearROI              string `json:"first_year_roi"`
}

// Format renders r for display. An undefined return prints as a dash.
func Format(f *locale.Formatter, r Result) Formatted {
	roiText := "—"
	if r.FirstYearROIPct != nil {
		roiText = f.Percent(math.Round(*r.FirstYearROIPct))
	}
	return Formatted{
		ProjectedConversionRate:   f.Percent(r.ProjectedConversionRatePct),
		IncrementalMonthlyRevenue: f.SignedCurrency(r.IncrementalMonthlyRevenue),
		IncrementalAnnualRevenue:  f.SignedCurrency(r.IncrementalAnnualRevenue),
		ExtraMonthlyAppointments:  f.Integer(int64(r.ExtraMonthlyAppointments)),
		FirstYearTotalCost:        f.Currency(r.FirstYearTotalCost),
		FirstYearROI:              roiText,
	}
}

// ProjectionResponse is returned for a successful projection.
type ProjectionResponse struct {
	Input     Input     `json:"input"`
	Result    Result    `json:"result"`
	Formatted Formatted `json:"formatted"`
}

// InvalidInputResponse is returned with 422 when the input is out of range.
type InvalidInputResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields"`
}

// DefaultsResponse describes the simulator's initial state.
type DefaultsResponse struct {
	Input    Input   `json:"input"`
	Config   Config  `json:"config"`
	Controls []Range `json:"controls"`
}

// GetDefaults handles GET /api/roi/defaults
func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	d := DefaultInput()
	h.writeJSON(w, http.StatusOK, DefaultsResponse{
		Input:    h.cfg.Input(d.MonthlyLeads, d.CurrentConversionRatePct, d.AverageTicket),
		Config:   h.cfg,
		Controls: Controls(),
	})
}

// CreateProjection handles POST /api/roi/projections
func (h *Handler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	ctx, span := roiTracer.Start(r.Context(), "roi.projection")
	defer span.End()
	start := time.Now()

	var req ProjectionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProjectionBodyBytes)).Decode(&req); err != nil {
		span.RecordError(err)
		h.logger.Warn("failed to decode projection request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	in := req.Input(h.cfg)
	span.SetAttributes(
		attribute.Int("roi.monthly_leads", in.MonthlyLeads),
		attribute.Float64("roi.current_conversion_rate_pct", in.CurrentConversionRatePct),
	)

	res, err := Project(in, h.cfg)
	if err != nil {
		span.RecordError(err)
		h.metrics.ObserveProjection("invalid", time.Since(start).Seconds())
		var invalid *InvalidInputError
		if errors.As(err, &invalid) {
			h.writeJSON(w, http.StatusUnprocessableEntity, InvalidInputResponse{
				Error:  "invalid input",
				Fields: invalid.Fields,
			})
			return
		}
		h.logger.Error("roi config rejected", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "simulator misconfigured"})
		return
	}

	h.metrics.ObserveProjection("ok", time.Since(start).Seconds())
	engagement.Record(ctx, h.engagement, h.logger, engagement.EventROISimulation)
	h.logger.Debug("roi projection computed",
		"monthly_leads", in.MonthlyLeads,
		"current_rate_pct", in.CurrentConversionRatePct,
		"incremental_monthly", res.IncrementalMonthlyRevenue,
	)

	h.writeJSON(w, http.StatusOK, ProjectionResponse{
		Input:     in,
		Result:    res,
		Formatted: Format(h.format, res),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

package proposal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/clinic-proposal/internal/engagement"
	"github.com/wolfman30/clinic-proposal/internal/locale"
	"github.com/wolfman30/clinic-proposal/internal/observability/metrics"
	"github.com/wolfman30/clinic-proposal/internal/roi"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

// Handler serves the proposal page and its JSON catalog.
type Handler struct {
	proposal   Proposal
	roiCfg     roi.Config
	format     *locale.Formatter
	metrics    *metrics.ProposalMetrics
	engagement engagement.Store
	logger     *logging.Logger
	now        func() time.Time
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

func WithMetrics(m *metrics.ProposalMetrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

func WithEngagement(store engagement.Store) HandlerOption {
	return func(h *Handler) { h.engagement = store }
}

// WithClock replaces time.Now for the validity countdown.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

func NewHandler(p Proposal, roiCfg roi.Config, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		proposal: p,
		roiCfg:   roiCfg,
		format:   locale.BRL(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Proposal returns the catalog being served.
func (h *Handler) Proposal() Proposal {
	return h.proposal
}

// Response is the body of GET /api/proposal.
type Response struct {
	Proposal
	TimeLeft TimeLeft `json:"time_left"`
}

// GetProposal handles GET /api/proposal
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	h.metrics.ObservePageView("api")
	h.writeJSON(w, http.StatusOK, Response{
		Proposal: h.proposal,
		TimeLeft: Countdown(h.proposal.ValidUntil, h.now()),
	})
}

// Routes mounts the HTML page.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.RenderPage)
	return r
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

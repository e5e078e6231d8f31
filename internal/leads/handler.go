package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/clinic-proposal/internal/engagement"
	"github.com/wolfman30/clinic-proposal/internal/observability/metrics"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

var leadsTracer = otel.Tracer("proposal.internal.leads")

// maxLeadBodyBytes caps the public approval form payload.
const maxLeadBodyBytes = 16 << 10

// Catalog reports which plan IDs may be requested.
type Catalog interface {
	Offers(id string) bool
}

// Notifier is told about every stored lead.
type Notifier interface {
	LeadCreated(ctx context.Context, lead *Lead) error
}

// Handler handles HTTP requests for leads
type Handler struct {
	repo       Repository
	catalog    Catalog
	notifier   Notifier
	metrics    *metrics.ProposalMetrics
	engagement engagement.Store
	proposalID string
	logger     *logging.Logger
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

func WithNotifier(n Notifier) HandlerOption {
	return func(h *Handler) { h.notifier = n }
}

func WithMetrics(m *metrics.ProposalMetrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

func WithEngagement(store engagement.Store) HandlerOption {
	return func(h *Handler) { h.engagement = store }
}

// WithProposalID tags stored leads with the proposal they approve.
func WithProposalID(id string) HandlerOption {
	return func(h *Handler) { h.proposalID = id }
}

// NewHandler creates a new leads handler
func NewHandler(repo Repository, catalog Catalog, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateLead handles POST /api/leads requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	ctx, span := leadsTracer.Start(r.Context(), "leads.create")
	defer span.End()

	var req CreateLeadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLeadBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.Warn("failed to decode request", "error", err)
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Normalize()
	req.ProposalID = h.proposalID
	span.SetAttributes(attribute.String("lead.plan", req.Plan))

	if err := req.Validate(); err != nil {
		h.metrics.ObserveLead(req.Plan, "invalid")
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.catalog != nil && !h.catalog.Offers(req.Plan) {
		h.metrics.ObserveLead("", "invalid")
		h.jsonError(w, ErrUnknownPlan.Error(), http.StatusBadRequest)
		return
	}

	lead, err := h.repo.Create(ctx, &req)
	if err != nil {
		span.RecordError(err)
		if IsValidationError(err) {
			h.metrics.ObserveLead(req.Plan, "invalid")
			h.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.metrics.ObserveLead(req.Plan, "error")
		h.logger.Error("failed to create lead", "error", err)
		h.jsonError(w, "failed to create lead", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveLead(lead.Plan, "created")
	engagement.Record(ctx, h.engagement, h.logger, engagement.EventLeadCreated)
	h.logger.Info("lead created", "id", lead.ID, "plan", lead.Plan)

	if h.notifier != nil {
		if err := h.notifier.LeadCreated(ctx, lead); err != nil {
			span.RecordError(err)
			h.logger.Warn("failed to notify sales about lead", "error", err, "lead_id", lead.ID)
		}
	}

	h.writeJSON(w, http.StatusCreated, lead)
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads  []*Lead `json:"leads"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// ListLeads handles GET /admin/leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	filter := ListLeadsFilter{
		Limit:  50,
		Offset: 0,
		Plan:   r.URL.Query().Get("plan"),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	leads, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		h.jsonError(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, ListLeadsResponse{
		Leads:  leads,
		Count:  len(leads),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}

// GetLead handles GET /admin/leads/{leadID} requests
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			h.jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load lead", "error", err)
		h.jsonError(w, "failed to load lead", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, lead)
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

func (h *Handler) jsonError(w http.ResponseWriter, msg string, status int) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

package demo

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

// Handler serves the sample dashboard and CRM boards.
type Handler struct {
	logger *logging.Logger
}

func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/crm", h.GetCRM)
	return r
}

// GetDashboard handles GET /api/demo/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, SampleDashboard())
}

// CRMResponse is one pipeline board plus the filtered contact list.
type CRMResponse struct {
	Pipeline   Pipeline     `json:"pipeline"`
	Totals     []StageTotal `json:"totals"`
	TotalValue float64      `json:"total_value"`
	Pipelines  []string     `json:"pipelines"`
	Segment    string       `json:"segment"`
	Segments   []string     `json:"segments"`
	Contacts   []Contact    `json:"contacts"`
}

// GetCRM handles GET /api/demo/crm?pipeline=&segment=
func (h *Handler) GetCRM(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	p, err := PipelineByKey(q.Get("pipeline"))
	if err != nil {
		h.badRequest(w, err)
		return
	}

	segment := q.Get("segment")
	if segment == "" {
		segment = SegmentAll
	}
	list, err := FilterContacts(segment)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	keys := make([]string, 0, len(pipelines))
	for _, pl := range Pipelines() {
		keys = append(keys, pl.Key)
	}

	h.writeJSON(w, http.StatusOK, CRMResponse{
		Pipeline:   p,
		Totals:     p.Totals(),
		TotalValue: p.Value(),
		Pipelines:  keys,
		Segment:    segment,
		Segments:   Segments(),
		Contacts:   list,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	if !errors.Is(err, ErrUnknownPipeline) && !errors.Is(err, ErrUnknownSegment) {
		h.logger.Error("demo crm lookup failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
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

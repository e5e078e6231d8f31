package engagement

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

// Handler exposes the counters to the sales team.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a new engagement handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// SnapshotResponse is the body of GET /admin/engagement.
type SnapshotResponse struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Counters    map[string]int64 `json:"counters"`
}

// GetSnapshot handles GET /admin/engagement
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	counters, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to load engagement snapshot", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(SnapshotResponse{
		GeneratedAt: time.Now().UTC(),
		Counters:    counters,
	}); err != nil {
		h.logger.Error("failed to encode engagement snapshot", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

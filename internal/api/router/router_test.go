package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wolfman30/clinic-proposal/internal/demo"
	"github.com/wolfman30/clinic-proposal/internal/engagement"
	httpmiddleware "github.com/wolfman30/clinic-proposal/internal/http/middleware"
	"github.com/wolfman30/clinic-proposal/internal/leads"
	"github.com/wolfman30/clinic-proposal/internal/proposal"
	"github.com/wolfman30/clinic-proposal/internal/roi"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

const testSecret = "router-secret"

func newTestRouter(t *testing.T, checks map[string]HealthCheck) http.Handler {
	t.Helper()

	logger := logging.New("error")
	store := engagement.NewMemoryStore()
	catalog := proposal.New()

	return New(&Config{
		Logger:            logger,
		ProposalHandler:   proposal.NewHandler(catalog, roi.DefaultConfig(), logger, proposal.WithEngagement(store)),
		ROIHandler:        roi.NewHandler(roi.DefaultConfig(), logger, roi.WithEngagement(store)),
		DemoHandler:       demo.NewHandler(logger),
		LeadsHandler:      leads.NewHandler(leads.NewInMemoryRepository(), catalog, logger, leads.WithEngagement(store)),
		EngagementHandler: engagement.NewHandler(store, logger),
		LeadRateLimiter:   httpmiddleware.NewRateLimiter(0.001, 2),
		AdminAuthSecret:   testSecret,
		HealthChecks:      checks,
	})
}

func serve(h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := serve(router, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", resp["status"])
	}
}

func TestRouterHealthEndpointDegraded(t *testing.T) {
	router := newTestRouter(t, map[string]HealthCheck{
		"redis":    func(context.Context) error { return errors.New("connection refused") },
		"postgres": func(context.Context) error { return nil },
	})

	rr := serve(router, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Checks["postgres"] != "ok" || resp.Checks["redis"] != "connection refused" {
		t.Fatalf("unexpected checks %v", resp.Checks)
	}
}

func TestRouterPublicEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/api/proposal", "", http.StatusOK},
		{http.MethodGet, "/api/roi/defaults", "", http.StatusOK},
		{http.MethodPost, "/api/roi/projections", `{"monthly_leads":15000,"current_conversion_rate_pct":15,"average_ticket":100}`, http.StatusOK},
		{http.MethodGet, "/api/demo/dashboard", "", http.StatusOK},
		{http.MethodGet, "/api/demo/crm?pipeline=humano", "", http.StatusOK},
		{http.MethodGet, "/api/demo/crm?segment=nope", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rr := serve(router, tt.method, tt.target, tt.body, nil)
		if rr.Code != tt.want {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.target, tt.want, rr.Code)
		}
	}
}

func TestRouterLeadsAreRateLimited(t *testing.T) {
	router := newTestRouter(t, nil)
	body := `{"name":"Ana","email":"ana@clinica.com.br","plan":"ecossistema-full"}`

	for i := 0; i < 2; i++ {
		if rr := serve(router, http.MethodPost, "/api/leads", body, nil); rr.Code != http.StatusCreated {
			t.Fatalf("lead %d: expected 201, got %d: %s", i, rr.Code, rr.Body.String())
		}
	}
	if rr := serve(router, http.MethodPost, "/api/leads", body, nil); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}

func TestRouterRateLimitIgnoresForwardedHeaders(t *testing.T) {
	router := newTestRouter(t, nil)
	body := `{"name":"Ana","email":"ana@clinica.com.br","plan":"ecossistema-full"}`

	for i := 0; i < 3; i++ {
		spoofed := map[string]string{
			"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i),
			"X-Real-IP":       fmt.Sprintf("198.51.100.%d", i),
		}
		rr := serve(router, http.MethodPost, "/api/leads", body, spoofed)
		if i < 2 && rr.Code != http.StatusCreated {
			t.Fatalf("lead %d: expected 201, got %d", i, rr.Code)
		}
		if i == 2 && rr.Code != http.StatusTooManyRequests {
			t.Fatalf("forwarded headers must not reset the limit, got %d", rr.Code)
		}
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, target := range []string{"/admin/leads", "/admin/engagement"} {
		if rr := serve(router, http.MethodGet, target, "", nil); rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, rr.Code)
		}
	}

	token, err := httpmiddleware.IssueAdminToken(testSecret, "vendas", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	auth := map[string]string{"Authorization": "Bearer " + token}

	serve(router, http.MethodGet, "/", "", nil)
	rr := serve(router, http.MethodGet, "/admin/engagement", "", auth)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var snap engagement.SnapshotResponse
	if err := json.NewDecoder(rr.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Counters[engagement.EventPageView] != 1 {
		t.Fatalf("expected one page view, got %v", snap.Counters)
	}

	if rr := serve(router, http.MethodGet, "/admin/leads", "", auth); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for leads, got %d", rr.Code)
	}
}

func TestRouterMetricsOptional(t *testing.T) {
	router := newTestRouter(t, nil)
	if rr := serve(router, http.MethodGet, "/metrics", "", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics handler, got %d", rr.Code)
	}
}

package demo

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

func TestFunnelRelativeToFirstStage(t *testing.T) {
	f := Funnel()
	require.Len(t, f, 5)
	want := []float64{100, 60, 46.7, 43, 38.7}
	for i, stage := range f {
		assert.InDelta(t, want[i], stage.Pct, 1e-9, stage.Label)
	}
}

func TestFunnelEmptyFirstStage(t *testing.T) {
	f := buildFunnel([]funnelCount{{"a", 0}, {"b", 10}})
	assert.Zero(t, f[1].Pct)
	assert.Empty(t, buildFunnel(nil))
}

func TestPipelineTotals(t *testing.T) {
	p, err := PipelineByKey("ia")
	require.NoError(t, err)

	totals := p.Totals()
	require.Len(t, totals, 4)
	assert.Equal(t, StageTotal{Stage: "novo", Deals: 2, Value: 6000}, totals[0])
	assert.Equal(t, StageTotal{Stage: "agendado", Deals: 2, Value: 10480}, totals[3])
	assert.InDelta(t, 27960, p.Value(), 1e-9)
}

func TestPipelineByKey(t *testing.T) {
	p, err := PipelineByKey("")
	require.NoError(t, err)
	assert.Equal(t, "ia", p.Key)

	_, err = PipelineByKey("vendas")
	assert.True(t, errors.Is(err, ErrUnknownPipeline))
}

func TestDealIDsUnique(t *testing.T) {
	seen := map[int]bool{}
	for _, p := range Pipelines() {
		for _, s := range p.Stages {
			for _, d := range s.Deals {
				assert.False(t, seen[d.ID], "duplicate deal %d", d.ID)
				seen[d.ID] = true
			}
		}
	}
	assert.Len(t, seen, 17)
}

func contactIDs(list []Contact) []int {
	ids := make([]int, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestFilterContacts(t *testing.T) {
	tests := []struct {
		segment string
		want    []int
	}{
		{"", []int{201, 202, 203, 204, 205}},
		{SegmentAll, []int{201, 202, 203, 204, 205}},
		{SegmentQualified, []int{201, 202, 204, 205}},
		{SegmentHighPriority, []int{201, 204}},
		{SegmentScheduled, []int{204}},
		{SegmentNoReply, []int{203}},
	}
	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			got, err := FilterContacts(tt.segment)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contactIDs(got))
		})
	}

	_, err := FilterContacts("VIP")
	assert.ErrorIs(t, err, ErrUnknownSegment)
}

func TestGetCRM(t *testing.T) {
	h := NewHandler(logging.New("error"))
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/crm?pipeline=followup&segment=Agendados")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body CRMResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "followup", body.Pipeline.Key)
	assert.Equal(t, []string{"ia", "humano", "followup"}, body.Pipelines)
	assert.InDelta(t, 8990, body.TotalValue, 1e-9)
	assert.Equal(t, []int{204}, contactIDs(body.Contacts))
}

func TestGetCRMRejectsUnknownFilters(t *testing.T) {
	h := NewHandler(logging.New("error"))

	for _, target := range []string{"/crm?pipeline=nope", "/crm?segment=nope"} {
		rec := httptest.NewRecorder()
		h.GetCRM(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetDashboard(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()
	h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body Dashboard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.KPIs, 6)
	assert.Len(t, body.Trend, 6)
	assert.Equal(t, "Leads", body.Funnel[0].Label)
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// ProposalMetrics exposes counters/histograms for the proposal site.
type ProposalMetrics struct {
	projectionsTotal  *prometheus.CounterVec
	projectionLatency prometheus.Histogram
	pageViewsTotal    *prometheus.CounterVec
	leadsTotal        *prometheus.CounterVec
}

func NewProposalMetrics(reg prometheus.Registerer) *ProposalMetrics {
	m := &ProposalMetrics{
		projectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposal",
			Subsystem: "roi",
			Name:      "projections_total",
			Help:      "Total ROI projections requested",
		}, []string{"status"}),
		projectionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "proposal",
			Subsystem: "roi",
			Name:      "projection_seconds",
			Help:      "Latency of ROI projection requests",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		pageViewsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposal",
			Name:      "page_views_total",
			Help:      "Total proposal page and panel views",
		}, []string{"page"}),
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposal",
			Name:      "leads_total",
			Help:      "Total approval requests submitted",
		}, []string{"plan", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.projectionsTotal, m.projectionLatency, m.pageViewsTotal, m.leadsTotal)
	return m
}

func (m *ProposalMetrics) ObserveProjection(status string, seconds float64) {
	if m == nil {
		return
	}
	m.projectionsTotal.WithLabelValues(status).Inc()
	m.projectionLatency.Observe(seconds)
}

func (m *ProposalMetrics) ObservePageView(page string) {
	if m == nil {
		return
	}
	m.pageViewsTotal.WithLabelValues(page).Inc()
}

func (m *ProposalMetrics) ObserveLead(plan, status string) {
	if m == nil {
		return
	}
	if plan == "" {
		plan = "unspecified"
	}
	m.leadsTotal.WithLabelValues(plan, status).Inc()
}

package demo

import "math"

// KPI is a headline tile of the sample dashboard.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// TrendPoint is one day of the weekly lead trend.
type TrendPoint struct {
	Day       string `json:"day"`
	Leads     int    `json:"leads"`
	Qualified int    `json:"qualified"`
	Scheduled int    `json:"scheduled"`
}

// ChannelRate is the conversion rate observed for an acquisition channel.
type ChannelRate struct {
	Channel       string  `json:"channel"`
	ConversionPct  float64 `json:"conversion_pct"`
}

// FunnelStage is one step of the patient funnel. Pct is relative to the
// first stage.
type FunnelStage struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// Dashboard is the sample analytics panel.
type Dashboard struct {
	KPIs     []KPI         `json:"kpis"`
	Trend    []TrendPoint  `json:"trend"`
	Channels []ChannelRate `json:"channels"`
	Funnel   []FunnelStage `json:"funnel"`
}

type funnelCount struct {
	label string
	count int
}

var funnelCounts = []funnelCount{
	{"Leads", 15000},
	{"Qualificados", 9000},
	{"Agendados", 7000},
	{"Confirmados", 6450},
	{"Realizados", 5800},
}

// Funnel derives stage percentages from raw counts, rounded to one decimal.
func Funnel() []FunnelStage {
	return buildFunnel(funnelCounts)
}

func buildFunnel(counts []funnelCount) []FunnelStage {
	out := make([]FunnelStage, 0, len(counts))
	if len(counts) == 0 {
		return out
	}
	first := counts[0].count
	for _, c := range counts {
		var pct float64
		if first > 0 {
			pct = math.Round(float64(c.count)/float64(first)*1000) / 10
		}
		out = append(out, FunnelStage{Label: c.label, Count: c.count, Pct: pct})
	}
	return out
}

// SampleDashboard returns the analytics panel shown in the demo.
func SampleDashboard() Dashboard {
	return Dashboard{
		KPIs: []KPI{
			{Label: "Leads/dia", Value: "500", Delta: "+24%"},
			{Label: "Qualificados", Value: "60%"},
			{Label: "Conversao", Value: "39%"},
			{Label: "No-show", Value: "10%"},
			{Label: "Receita", Value: "R$ 2,3M"},
			{Label: "Pipeline", Value: "R$ 4,3M"},
		},
		Trend: []TrendPoint{
			{Day: "Seg", Leads: 210, Qualified: 130, Scheduled: 90},
			{Day: "Ter", Leads: 260, Qualified: 165, Scheduled: 110},
			{Day: "Qua", Leads: 300, Qualified: 182, Scheduled: 124},
			{Day: "Qui", Leads: 320, Qualified: 195, Scheduled: 138},
			{Day: "Sex", Leads: 280, Qualified: 172, Scheduled: 120},
			{Day: "Sab", Leads: 240, Qualified: 150, Scheduled: 100},
		},
		Channels: []ChannelRate{
			{Channel: "WhatsApp", ConversionPct: 44},
			{Channel: "Instagram", ConversionPct: 36},
			{Channel: "Google", ConversionPct: 31},
			{Channel: "Indicacao", ConversionPct: 58},
		},
		Funnel: Funnel(),
	}
}

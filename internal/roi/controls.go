package roi

// Range describes one adjustable control of the ROI simulator. Ranges are
// hints for the presentation layer; Project accepts any in-contract value.
type Range struct {
	Field string  `json:"field"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// FillPct returns where v sits inside the range as a 0..100 percentage,
// clamped to the ends.
func (r Range) FillPct(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	pct := (v - r.Min) / (r.Max - r.Min) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Controls returns the simulator sliders in display order.
func Controls() []Range {
	return []Range{
		{Field: FieldMonthlyLeads, Label: "Leads Mensais", Min: 1000, Max: 25000, Step: 500},
		{Field: FieldAverageTicket, Label: "Ticket Médio (R$)", Min: 70, Max: 1000, Step: 10},
		{Field: FieldCurrentConversionRatePct, Label: "Conversão Atual (%)", Min: 1, Max: 40, Step: 0.5},
	}
}

// Package roi projects the revenue and first-year return of adopting the
// AI sales automation offer for a clinic.
package roi

import (
	"math"
)

const monthsPerYear = 12

// Input holds the business figures a clinic provides for a projection.
type Input struct {
	MonthlyLeads             int     `json:"monthly_leads"`
	CurrentConversionRatePct float64 `json:"current_conversion_rate_pct"`
	AverageTicket            float64 `json:"average_ticket"`
	SetupCost                float64 `json:"setup_cost"`
	MonthlyRecurringCost     float64 `json:"monthly_recurring_cost"`
}

// Config holds the commercial assumptions behind a projection.
type Config struct {
	UpliftFactor         float64 `json:"uplift_factor"`
	SetupCost            float64 `json:"setup_cost"`
	MonthlyRecurringCost float64 `json:"monthly_recurring_cost"`
}

// DefaultConfig returns the assumptions of the full-ecosystem offer.
func DefaultConfig() Config {
	return Config{
		UpliftFactor:         1.5,
		SetupCost:            60000,
		MonthlyRecurringCost: 7000,
	}
}

// Validate reports ErrInvalidConfig when the assumptions cannot produce a projection.
func (c Config) Validate() error {
	if !isFinite(c.UpliftFactor) || c.UpliftFactor <= 1 {
		return ErrInvalidConfig
	}
	if !isFinite(c.SetupCost) || c.SetupCost < 0 {
		return ErrInvalidConfig
	}
	if !isFinite(c.MonthlyRecurringCost) || c.MonthlyRecurringCost < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Input builds an Input that carries the configured costs.
func (c Config) Input(monthlyLeads int, currentConversionRatePct, averageTicket float64) Input {
	return Input{
		MonthlyLeads:             monthlyLeads,
		CurrentConversionRatePct: currentConversionRatePct,
		AverageTicket:            averageTicket,
		SetupCost:                c.SetupCost,
		MonthlyRecurringCost:     c.MonthlyRecurringCost,
	}
}

// DefaultInput is the scenario the proposal opens with: 500 leads a day,
// 15% conversion and a 100 BRL ticket.
func DefaultInput() Input {
	return DefaultConfig().Input(15000, 15, 100)
}

// Result is the projection derived from an Input. It has no identity of its
// own and is recomputed for every input change.
type Result struct {
	ProjectedConversionRatePct float64 `json:"projected_conversion_rate_pct"`
	CurrentConvertedLeads      float64 `json:"current_converted_leads"`
	ProjectedConvertedLeads    float64 `json:"projected_converted_leads"`
	ExtraMonthlyAppointments   int     `json:"extra_monthly_appointments"`
	CurrentMonthlyRevenue      float64 `json:"current_monthly_revenue"`
	ProjectedMonthlyRevenue    float64 `json:"projected_monthly_revenue"`
	IncrementalMonthlyRevenue  float64 `json:"incremental_monthly_revenue"`
	IncrementalAnnualRevenue   float64 `json:"incremental_annual_revenue"`
	FirstYearTotalCost         float64 `json:"first_year_total_cost"`
	FirstYearNetProfit         float64 `json:"first_year_net_profit"`
	// FirstYearROIPct is nil when the first-year cost is zero.
	FirstYearROIPct *float64 `json:"first_year_roi_pct"`
}

// ROIDefined reports whether the return percentage could be computed.
func (r Result) ROIDefined() bool {
	return r.FirstYearROIPct != nil
}

// Project computes the projection for in under cfg. Costs are taken from in;
// cfg contributes the uplift factor. Only the projected rate is capped at
// 100%; out-of-range inputs yield an *InvalidInputError.
func Project(in Input, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	projectedRate := math.Min(100, in.CurrentConversionRatePct*cfg.UpliftFactor)

	leads := float64(in.MonthlyLeads)
	currentConverted := leads * in.CurrentConversionRatePct / 100
	projectedConverted := leads * projectedRate / 100

	currentRevenue := currentConverted * in.AverageTicket
	projectedRevenue := projectedConverted * in.AverageTicket

	incrementalMonthly := projectedRevenue - currentRevenue
	incrementalAnnual := incrementalMonthly * monthsPerYear

	totalCost := in.SetupCost + in.MonthlyRecurringCost*monthsPerYear
	netProfit := incrementalAnnual - totalCost

	if err := checkRepresentable(in, currentRevenue, projectedRevenue, incrementalAnnual, totalCost, netProfit); err != nil {
		return Result{}, err
	}

	res := Result{
		ProjectedConversionRatePct: projectedRate,
		CurrentConvertedLeads:      currentConverted,
		ProjectedConvertedLeads:    projectedConverted,
		ExtraMonthlyAppointments:   int(math.Round(projectedConverted - currentConverted)),
		CurrentMonthlyRevenue:      currentRevenue,
		ProjectedMonthlyRevenue:    projectedRevenue,
		IncrementalMonthlyRevenue:  incrementalMonthly,
		IncrementalAnnualRevenue:   incrementalAnnual,
		FirstYearTotalCost:         totalCost,
		FirstYearNetProfit:         netProfit,
	}
	if totalCost != 0 {
		roiPct := netProfit / totalCost * 100
		if !isFinite(roiPct) {
			return Result{}, &InvalidInputError{Fields: []FieldError{
				{Field: FieldSetupCost, Value: in.SetupCost, Reason: ReasonOutOfRange},
				{Field: FieldMonthlyRecurringCost, Value: in.MonthlyRecurringCost, Reason: ReasonOutOfRange},
			}}
		}
		res.FirstYearROIPct = &roiPct
	}
	return res, nil
}

// checkRepresentable rejects inputs whose products overflow float64. Revenue
// overflow is blamed on leads and ticket; cost overflow on the two costs.
func checkRepresentable(in Input, currentRevenue, projectedRevenue, incrementalAnnual, totalCost, netProfit float64) error {
	var fields []FieldError
	if !isFinite(currentRevenue) || !isFinite(projectedRevenue) || !isFinite(incrementalAnnual) {
		fields = append(fields,
			FieldError{Field: FieldMonthlyLeads, Value: float64(in.MonthlyLeads), Reason: ReasonOutOfRange},
			FieldError{Field: FieldAverageTicket, Value: in.AverageTicket, Reason: ReasonOutOfRange},
		)
	}
	if !isFinite(totalCost) || (len(fields) == 0 && !isFinite(netProfit)) {
		fields = append(fields,
			FieldError{Field: FieldSetupCost, Value: in.SetupCost, Reason: ReasonOutOfRange},
			FieldError{Field: FieldMonthlyRecurringCost, Value: in.MonthlyRecurringCost, Reason: ReasonOutOfRange},
		)
	}
	if len(fields) == 0 {
		return nil
	}
	return &InvalidInputError{Fields: fields}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

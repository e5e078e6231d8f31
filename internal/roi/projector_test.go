package roi

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDefaultScenario(t *testing.T) {
	res, err := Project(DefaultInput(), DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 22.5, res.ProjectedConversionRatePct, 1e-9)
	assert.InDelta(t, 225000, res.CurrentMonthlyRevenue, 1e-6)
	assert.InDelta(t, 337500, res.ProjectedMonthlyRevenue, 1e-6)
	assert.InDelta(t, 112500, res.IncrementalMonthlyRevenue, 1e-6)
	assert.InDelta(t, 1350000, res.IncrementalAnnualRevenue, 1e-6)
	assert.InDelta(t, 144000, res.FirstYearTotalCost, 1e-6)
	assert.InDelta(t, 1206000, res.FirstYearNetProfit, 1e-6)
	require.True(t, res.ROIDefined())
	assert.InDelta(t, 837.5, *res.FirstYearROIPct, 1e-9)
	assert.Equal(t, 1125, res.ExtraMonthlyAppointments)
}

func TestProjectCapsProjectedRate(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Project(cfg.Input(1000, 80, 200), cfg)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.ProjectedConversionRatePct)
	assert.InDelta(t, 200000, res.ProjectedMonthlyRevenue, 1e-6)
}

func TestProjectCapAboveThreshold(t *testing.T) {
	cfg := DefaultConfig()
	threshold := 100 / cfg.UpliftFactor
	for _, rate := range []float64{threshold + 0.01, 70, 99.5, 100} {
		res, err := Project(cfg.Input(500, rate, 100), cfg)
		require.NoError(t, err)
		assert.Equal(t, 100.0, res.ProjectedConversionRatePct, "rate %v", rate)
	}
}

func TestProjectRejectsNegativeConversionRate(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Project(cfg.Input(15000, -5, 100), cfg)

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	require.Len(t, invalid.Fields, 1)
	assert.Equal(t, FieldCurrentConversionRatePct, invalid.Fields[0].Field)
	assert.Contains(t, err.Error(), FieldCurrentConversionRatePct)
}

func TestProjectReportsEveryInvalidField(t *testing.T) {
	in := Input{
		MonthlyLeads:             -1,
		CurrentConversionRatePct: 120,
		AverageTicket:            -10,
		SetupCost:                -1,
		MonthlyRecurringCost:     math.Inf(1),
	}
	_, err := Project(in, DefaultConfig())

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	for _, field := range []string{
		FieldMonthlyLeads,
		FieldCurrentConversionRatePct,
		FieldAverageTicket,
		FieldSetupCost,
		FieldMonthlyRecurringCost,
	} {
		assert.True(t, invalid.Has(field), "expected %s to be reported", field)
	}
}

func TestProjectDoesNotClampInputs(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Project(cfg.Input(100, 100.01, 100), cfg)
	require.Error(t, err)

	res, err := Project(cfg.Input(100, 100, 100), cfg)
	require.NoError(t, err)
	assert.Equal(t, res.CurrentMonthlyRevenue, res.ProjectedMonthlyRevenue)
	assert.Zero(t, res.IncrementalMonthlyRevenue)
}

func TestProjectZeroLeads(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Project(cfg.Input(0, 15, 100), cfg)
	require.NoError(t, err)
	assert.Zero(t, res.IncrementalMonthlyRevenue)
	assert.Equal(t, -res.FirstYearTotalCost, res.FirstYearNetProfit)
	require.True(t, res.ROIDefined())
	assert.InDelta(t, -100, *res.FirstYearROIPct, 1e-9)
}

func TestProjectZeroCostLeavesROIUndefined(t *testing.T) {
	cfg := Config{UpliftFactor: 1.5}
	res, err := Project(cfg.Input(1000, 10, 100), cfg)
	require.NoError(t, err)
	assert.False(t, res.ROIDefined())
	assert.Nil(t, res.FirstYearROIPct)
	assert.Zero(t, res.FirstYearTotalCost)
	assert.InDelta(t, 60000, res.FirstYearNetProfit, 1e-6)
}

func TestProjectUsesInputCosts(t *testing.T) {
	in := DefaultInput()
	in.SetupCost = 10000
	in.MonthlyRecurringCost = 2000

	res, err := Project(in, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 34000, res.FirstYearTotalCost, 1e-6)
}

func TestProjectMonotonicInLeads(t *testing.T) {
	cfg := DefaultConfig()
	prev := -1.0
	for leads := 0; leads <= 25000; leads += 500 {
		res, err := Project(cfg.Input(leads, 20, 150), cfg)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.IncrementalMonthlyRevenue, prev, "leads %d", leads)
		prev = res.IncrementalMonthlyRevenue
	}
}

func TestProjectIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	in := cfg.Input(12345, 17.5, 333)

	first, err := Project(in, cfg)
	require.NoError(t, err)
	second, err := Project(in, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(*first.FirstYearROIPct), math.Float64bits(*second.FirstYearROIPct))
}

func TestProjectRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"uplift of one", Config{UpliftFactor: 1}},
		{"uplift below one", Config{UpliftFactor: 0.5}},
		{"nan uplift", Config{UpliftFactor: math.NaN()}},
		{"negative setup", Config{UpliftFactor: 1.5, SetupCost: -1}},
		{"negative monthly", Config{UpliftFactor: 1.5, MonthlyRecurringCost: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(DefaultInput(), tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRangeFillPct(t *testing.T) {
	leads := Controls()[0]
	assert.Equal(t, FieldMonthlyLeads, leads.Field)
	assert.InDelta(t, 0, leads.FillPct(1000), 1e-9)
	assert.InDelta(t, 100, leads.FillPct(25000), 1e-9)
	assert.InDelta(t, 58.333, leads.FillPct(15000), 1e-3)
	assert.Equal(t, 0.0, leads.FillPct(10))
	assert.Equal(t, 100.0, leads.FillPct(99999))
	assert.Equal(t, 0.0, Range{Min: 5, Max: 5}.FillPct(5))
}

func TestProjectRejectsUnrepresentableRevenue(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Project(cfg.Input(1000, 10, 1e307), cfg)

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.True(t, invalid.Has(FieldAverageTicket))
	assert.True(t, invalid.Has(FieldMonthlyLeads))
	assert.Equal(t, ReasonOutOfRange, invalid.Fields[0].Reason)
}

func TestProjectRejectsUnrepresentableCost(t *testing.T) {
	in := DefaultInput()
	in.MonthlyRecurringCost = math.MaxFloat64

	_, err := Project(in, DefaultConfig())
	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.True(t, invalid.Has(FieldMonthlyRecurringCost))
	assert.False(t, invalid.Has(FieldAverageTicket))
}

func TestProjectLargeFiniteInputs(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Project(cfg.Input(25000, 40, 1e15), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 6e19, res.IncrementalAnnualRevenue, 1e6)
	require.True(t, res.ROIDefined())
	assert.False(t, math.IsInf(*res.FirstYearROIPct, 0))
}

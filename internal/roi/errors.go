package roi

import (
	"errors"
	"strings"
)

// ErrInvalidConfig is returned when the uplift factor is not above 1 or a
// configured cost is negative.
var ErrInvalidConfig = errors.New("roi: invalid projection config")

// Field names used in FieldError, matching the JSON input keys.
const (
	FieldMonthlyLeads             = "monthly_leads"
	FieldCurrentConversionRatePct = "current_conversion_rate_pct"
	FieldAverageTicket            = "average_ticket"
	FieldSetupCost                = "setup_cost"
	FieldMonthlyRecurringCost     = "monthly_recurring_cost"
)

// ReasonOutOfRange marks inputs that are individually valid but whose
// projection does not fit in a float64.
const ReasonOutOfRange = "projection exceeds representable range"

// FieldError describes one input field outside its documented range.
type FieldError struct {
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

// InvalidInputError lists every offending field of an Input.
type InvalidInputError struct {
	Fields []FieldError `json:"fields"`
}

func (e *InvalidInputError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field+" "+f.Reason)
	}
	return "roi: invalid input: " + strings.Join(names, "; ")
}

// Has reports whether field is among the offending fields.
func (e *InvalidInputError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks every field and reports all violations at once.
func (in Input) Validate() error {
	var fields []FieldError
	if in.MonthlyLeads < 0 {
		fields = append(fields, FieldError{Field: FieldMonthlyLeads, Value: float64(in.MonthlyLeads), Reason: "must not be negative"})
	}
	fields = checkNonNegative(fields, FieldAverageTicket, in.AverageTicket)
	fields = checkNonNegative(fields, FieldSetupCost, in.SetupCost)
	fields = checkNonNegative(fields, FieldMonthlyRecurringCost, in.MonthlyRecurringCost)

	rate := in.CurrentConversionRatePct
	switch {
	case !isFinite(rate):
		fields = append(fields, FieldError{Field: FieldCurrentConversionRatePct, Value: rate, Reason: "must be a finite number"})
	case rate < 0 || rate > 100:
		fields = append(fields, FieldError{Field: FieldCurrentConversionRatePct, Value: rate, Reason: "must be between 0 and 100"})
	}

	if len(fields) == 0 {
		return nil
	}
	return &InvalidInputError{Fields: fields}
}

func checkNonNegative(fields []FieldError, name string, v float64) []FieldError {
	switch {
	case !isFinite(v):
		return append(fields, FieldError{Field: name, Value: v, Reason: "must be a finite number"})
	case v < 0:
		return append(fields, FieldError{Field: name, Value: v, Reason: "must not be negative"})
	}
	return fields
}

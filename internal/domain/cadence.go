package domain

import "fmt"

// IntervalUnit is the calendar unit of a repayment cadence.
type IntervalUnit string

const (
	IntervalDays   IntervalUnit = "days"
	IntervalWeeks  IntervalUnit = "weeks"
	IntervalMonths IntervalUnit = "months"
	IntervalYears  IntervalUnit = "years"
)

func (u IntervalUnit) IsValid() bool {
	switch u {
	case IntervalDays, IntervalWeeks, IntervalMonths, IntervalYears:
		return true
	}
	return false
}

// Cadence is a repayment interval: a unit and a positive multiplier.
type Cadence struct {
	Unit  IntervalUnit `json:"unit"`
	Value int          `json:"value"`
}

// Monthly is the cadence used when none is configured.
var Monthly = Cadence{Unit: IntervalMonths, Value: 1}

// IsSet reports whether both unit and multiplier are configured.
func (c Cadence) IsSet() bool {
	return c.Unit != "" && c.Value > 0
}

// OrDefault returns c, or Monthly when c is unset.
func (c Cadence) OrDefault() Cadence {
	if !c.IsSet() {
		return Monthly
	}
	return c
}

func (c Cadence) String() string {
	if !c.IsSet() {
		return "unset"
	}
	return fmt.Sprintf("every %d %s", c.Value, c.Unit)
}

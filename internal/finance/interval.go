// Package finance holds the loan accrual and payment-allocation engine.
//
// Nothing here reads the clock or touches storage: every function takes the
// dates it needs and returns plain values, so results are reproducible.
package finance

import (
	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
)

// IntervalsElapsed counts the complete cadences between start and end.
// Partial intervals never count, and the result is 0 when end is not after start.
func IntervalsElapsed(start, end date.Date, cadence domain.Cadence) int {
	if !end.After(start) {
		return 0
	}

	multiplier := cadence.Value
	if multiplier < 1 {
		multiplier = 1
	}

	switch cadence.Unit {
	case domain.IntervalDays:
		return start.DaysUntil(end) / multiplier
	case domain.IntervalWeeks:
		return start.DaysUntil(end) / (multiplier * 7)
	case domain.IntervalMonths:
		return nonNegative(monthsBetween(start, end)) / multiplier
	case domain.IntervalYears:
		return nonNegative(yearsBetween(start, end)) / multiplier
	}
	return 0
}

// monthsBetween counts calendar months, dropping the final month when its
// day-of-month has not yet reached start's.
func monthsBetween(start, end date.Date) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}

func yearsBetween(start, end date.Date) int {
	years := end.Year() - start.Year()
	if end.Month() < start.Month() || (end.Month() == start.Month() && end.Day() < start.Day()) {
		years--
	}
	return years
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

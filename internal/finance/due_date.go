package finance

import (
	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
)

// NextDueDate returns the loan's next contractual due date. lastPaymentDate
// may be the zero Date when nothing has been paid yet.
func NextDueDate(loan *domain.Loan, lastPaymentDate date.Date) date.Date {
	return ProjectDueDate(loan.StartDate, loan.Cadence(), lastPaymentDate)
}

// ProjectDueDate advances one cadence from the last payment, or from start
// when there is none.
//
// Monthly cadences behave differently on the two branches: from start, the
// start's day-of-month is kept and clamped to the target month's length;
// from a payment, months are added plainly and a missing day overflows into
// the following month.
func ProjectDueDate(start date.Date, cadence domain.Cadence, lastPaymentDate date.Date) date.Date {
	base := start
	hasPayment := !lastPaymentDate.IsZero()
	if hasPayment {
		base = lastPaymentDate
	}

	if !cadence.IsSet() {
		return base.AddMonths(1)
	}

	switch cadence.Unit {
	case domain.IntervalDays:
		return base.AddDays(cadence.Value)
	case domain.IntervalWeeks:
		return base.AddDays(cadence.Value * 7)
	case domain.IntervalMonths:
		if hasPayment {
			return base.AddMonths(cadence.Value)
		}
		return start.AddMonthsClamped(cadence.Value, start.Day())
	case domain.IntervalYears:
		return base.AddYears(cadence.Value)
	}
	return base.AddMonths(1)
}

// DaysSince returns the whole days from the last payment (or start) to asOf.
func DaysSince(start, lastPaymentDate, asOf date.Date) int {
	from := start
	if !lastPaymentDate.IsZero() {
		from = lastPaymentDate
	}
	return from.DaysUntil(asOf)
}

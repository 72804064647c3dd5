package finance

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
	"github.com/segyhp/lending-engine/pkg/utils"
)

// AccruedIncome of a fixed income is its fixed amount; nothing compounds.
func AccruedIncome(fi *domain.FixedIncome) decimal.Decimal {
	if !fi.Amount.IsPositive() {
		return decimal.Zero
	}
	return utils.RoundCurrency(fi.Amount)
}

// NextIncomeDate projects the next expected income payment.
func NextIncomeDate(fi *domain.FixedIncome, lastPaymentDate date.Date) date.Date {
	return ProjectDueDate(fi.StartDate, fi.Cadence(), lastPaymentDate)
}

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/pkg/date"
)

// Kinds of upcoming payment
const (
	UpcomingKindLoan        = "loan"
	UpcomingKindFixedIncome = "fixed_income"
)

// UpcomingPayment is the next expected payment on an active loan or fixed income.
type UpcomingPayment struct {
	ID                     uuid.UUID        `json:"id"`
	Kind                   string           `json:"kind"`
	BorrowerName           string           `json:"borrower_name"`
	BorrowerEmail          string           `json:"-"`
	AssetType              string           `json:"asset_type"`
	DueDate                date.Date        `json:"due_date"`
	DaysUntilDue           int              `json:"days_until_due"`
	AccruedInterest        decimal.Decimal  `json:"accrued_interest"`
	DaysSinceLastPayment   int              `json:"days_since_last_payment"`
	CurrentBalance         decimal.Decimal  `json:"current_balance"`
	RealRemainingPrincipal *decimal.Decimal `json:"real_remaining_principal,omitempty"`
}

type DueDateResponse struct {
	ID              uuid.UUID `json:"id"`
	NextDueDate     date.Date `json:"next_due_date"`
	LastPaymentDate date.Date `json:"last_payment_date"`
}

// BalanceCorrection records a stored balance that disagreed with the
// payment history and was rewritten.
type BalanceCorrection struct {
	LoanID   uuid.UUID       `json:"loan_id"`
	Stored   decimal.Decimal `json:"stored"`
	Expected decimal.Decimal `json:"expected"`
}

type ReconcileReport struct {
	Checked   int                  `json:"checked"`
	Corrected []*BalanceCorrection `json:"corrected"`
}

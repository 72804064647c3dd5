package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/pkg/date"
)

// LoanType selects the accrual and allocation algorithm.
type LoanType string

const (
	LoanTypeInstallment LoanType = "installment"
	LoanTypeBullet      LoanType = "bullet"
)

// LoanStatus is terminal once paid_off or defaulted.
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusPaidOff   LoanStatus = "paid_off"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusPaidOff, LoanStatusDefaulted:
		return true
	}
	return false
}

// Loan represents a loan entity. InterestRate is a percentage charged per
// repayment interval, not an annual rate.
type Loan struct {
	ID                     uuid.UUID       `json:"id" db:"id"`
	BorrowerID             uuid.UUID       `json:"borrower_id" db:"borrower_id"`
	LoanType               LoanType        `json:"loan_type" db:"loan_type"`
	PrincipalAmount        decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestRate           decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	CurrentBalance         decimal.Decimal `json:"current_balance" db:"current_balance"`
	StartDate              date.Date       `json:"start_date" db:"start_date"`
	EndDate                date.Date       `json:"end_date" db:"end_date"`
	RepaymentIntervalUnit  IntervalUnit    `json:"repayment_interval_unit,omitempty" db:"repayment_interval_unit"`
	RepaymentIntervalValue int             `json:"repayment_interval_value,omitempty" db:"repayment_interval_value"`
	Status                 LoanStatus      `json:"status" db:"status"`
	Notes                  string          `json:"notes,omitempty" db:"notes"`
	CreatedAt              time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at" db:"updated_at"`
}

// Cadence returns the loan's repayment interval as stored; it may be unset.
func (l *Loan) Cadence() Cadence {
	return Cadence{Unit: l.RepaymentIntervalUnit, Value: l.RepaymentIntervalValue}
}

func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	BorrowerID             uuid.UUID       `json:"borrower_id" validate:"required"`
	LoanType               LoanType        `json:"loan_type" validate:"required,oneof=installment bullet"`
	PrincipalAmount        decimal.Decimal `json:"principal_amount" validate:"decimal_gt=0"`
	InterestRate           decimal.Decimal `json:"interest_rate" validate:"decimal_gte=0,decimal_lte=100"`
	StartDate              date.Date       `json:"start_date" validate:"required"`
	EndDate                date.Date       `json:"end_date"`
	RepaymentIntervalUnit  IntervalUnit    `json:"repayment_interval_unit" validate:"omitempty,oneof=days weeks months years"`
	RepaymentIntervalValue int             `json:"repayment_interval_value" validate:"omitempty,gte=1"`
	Notes                  string          `json:"notes"`
}

type UpdateLoanStatusRequest struct {
	Status LoanStatus `json:"status" validate:"required,oneof=active paid_off defaulted"`
}

// LoanAccrual is the interest position of a loan as of a date. Installment
// loans fill AccruedInterest; bullet loans fill Summary as well, with
// AccruedInterest set to the pending interest.
type LoanAccrual struct {
	LoanID          uuid.UUID        `json:"loan_id"`
	LoanType        LoanType         `json:"loan_type"`
	AsOf            date.Date        `json:"as_of"`
	AccruedInterest decimal.Decimal  `json:"accrued_interest"`
	Summary         *InterestSummary `json:"summary,omitempty"`
}

// InterestSummary is the result of walking a bullet loan's payment history.
type InterestSummary struct {
	TotalInterestAccrued decimal.Decimal `json:"total_interest_accrued"`
	TotalInterestPaid    decimal.Decimal `json:"total_interest_paid"`
	PendingInterest      decimal.Decimal `json:"pending_interest"`
}

type BalanceResponse struct {
	LoanID                 uuid.UUID       `json:"loan_id"`
	CurrentBalance         decimal.Decimal `json:"current_balance"`
	RealRemainingPrincipal decimal.Decimal `json:"real_remaining_principal"`
	DaysSinceLastPayment   int             `json:"days_since_last_payment"`
}

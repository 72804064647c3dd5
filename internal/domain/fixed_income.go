package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/pkg/date"
)

type FixedIncomeStatus string

const (
	FixedIncomeStatusActive     FixedIncomeStatus = "active"
	FixedIncomeStatusTerminated FixedIncomeStatus = "terminated"
	FixedIncomeStatusExpired    FixedIncomeStatus = "expired"
)

// FixedIncome is a lease, rent agreement or deposit paying a fixed,
// non-amortizing Amount every cadence.
type FixedIncome struct {
	ID                   uuid.UUID         `json:"id" db:"id"`
	Label                string            `json:"label" db:"label"`
	PayerID              uuid.UUID         `json:"payer_id" db:"payer_id"`
	Amount               decimal.Decimal   `json:"amount" db:"amount"`
	PaymentIntervalUnit  IntervalUnit      `json:"payment_interval_unit" db:"payment_interval_unit"`
	PaymentIntervalValue int               `json:"payment_interval_value" db:"payment_interval_value"`
	StartDate            date.Date         `json:"start_date" db:"start_date"`
	EndDate              date.Date         `json:"end_date" db:"end_date"`
	Status               FixedIncomeStatus `json:"status" db:"status"`
	CreatedAt            time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at" db:"updated_at"`
}

func (f *FixedIncome) Cadence() Cadence {
	return Cadence{Unit: f.PaymentIntervalUnit, Value: f.PaymentIntervalValue}
}

type IncomePayment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	FixedIncomeID uuid.UUID       `json:"fixed_income_id" db:"fixed_income_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate   date.Date       `json:"payment_date" db:"payment_date"`
	Notes         string          `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type CreateFixedIncomeRequest struct {
	Label                string          `json:"label" validate:"required"`
	PayerID              uuid.UUID       `json:"payer_id" validate:"required"`
	Amount               decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	PaymentIntervalUnit  IntervalUnit    `json:"payment_interval_unit" validate:"required,oneof=days weeks months years"`
	PaymentIntervalValue int             `json:"payment_interval_value" validate:"required,gte=1"`
	StartDate            date.Date       `json:"start_date" validate:"required"`
	EndDate              date.Date       `json:"end_date"`
}

type UpdateFixedIncomeStatusRequest struct {
	Status FixedIncomeStatus `json:"status" validate:"required,oneof=active terminated expired"`
}

type CreateIncomePaymentRequest struct {
	FixedIncomeID uuid.UUID       `json:"fixed_income_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	PaymentDate   date.Date       `json:"payment_date" validate:"required"`
	Notes         string          `json:"notes"`
}

type UpdateIncomePaymentRequest struct {
	FixedIncomeID *uuid.UUID       `json:"fixed_income_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,decimal_gt=0"`
	PaymentDate   *date.Date       `json:"payment_date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

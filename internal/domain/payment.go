package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/pkg/date"
)

type PaymentType string

const (
	PaymentTypePrincipal PaymentType = "principal"
	PaymentTypeInterest  PaymentType = "interest"
	PaymentTypeMixed     PaymentType = "mixed"
)

// DerivePaymentType is mixed when both parts are positive, otherwise the
// nonzero part. A payment with neither part is reported as interest.
func DerivePaymentType(principal, interest decimal.Decimal) PaymentType {
	switch {
	case principal.IsPositive() && interest.IsPositive():
		return PaymentTypeMixed
	case principal.IsPositive():
		return PaymentTypePrincipal
	default:
		return PaymentTypeInterest
	}
}

// Payment is applied against a loan. Amount always equals
// PrincipalAmount + InterestAmount.
type Payment struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	LoanID          uuid.UUID       `json:"loan_id" db:"loan_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	PaymentType     PaymentType     `json:"payment_type" db:"payment_type"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	PaymentDate     date.Date       `json:"payment_date" db:"payment_date"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// SetSplit stores the principal/interest split and keeps Amount and
// PaymentType consistent with it.
func (p *Payment) SetSplit(principal, interest decimal.Decimal) {
	p.PrincipalAmount = principal
	p.InterestAmount = interest
	p.Amount = principal.Add(interest)
	p.PaymentType = DerivePaymentType(principal, interest)
}

// PaymentApplication is the outcome of allocating a payment against a loan.
type PaymentApplication struct {
	NewBalance    decimal.Decimal `json:"new_balance"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	IsPaidOff     bool            `json:"is_paid_off"`
}

// CreatePaymentRequest carries either a total Amount, which is split by the
// allocator, or an explicit PrincipalAmount/InterestAmount split. Bullet
// loans accept only the explicit split.
type CreatePaymentRequest struct {
	LoanID          uuid.UUID        `json:"loan_id" validate:"required"`
	Amount          *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,decimal_gt=0"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty" validate:"omitempty,decimal_gte=0"`
	InterestAmount  *decimal.Decimal `json:"interest_amount,omitempty" validate:"omitempty,decimal_gte=0"`
	PaymentDate     date.Date        `json:"payment_date" validate:"required"`
	Notes           string           `json:"notes"`
}

// HasSplit reports whether the caller decided the principal/interest split.
func (r *CreatePaymentRequest) HasSplit() bool {
	return r.PrincipalAmount != nil || r.InterestAmount != nil
}

// UpdatePaymentRequest edits a payment; nil fields keep their value. A
// different LoanID moves the payment to that loan.
type UpdatePaymentRequest struct {
	LoanID          *uuid.UUID       `json:"loan_id,omitempty"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty" validate:"omitempty,decimal_gte=0"`
	InterestAmount  *decimal.Decimal `json:"interest_amount,omitempty" validate:"omitempty,decimal_gte=0"`
	PaymentDate     *date.Date       `json:"payment_date,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

type PaymentResponse struct {
	Payment     *Payment           `json:"payment"`
	Application PaymentApplication `json:"application"`
	LoanStatus  LoanStatus         `json:"loan_status"`
}

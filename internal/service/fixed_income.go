package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/finance"
	"github.com/segyhp/lending-engine/pkg/date"
	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/utils"
)

func (s *LendingService) CreateFixedIncome(ctx context.Context, request *domain.CreateFixedIncomeRequest) (*domain.FixedIncome, error) {
	label := strings.TrimSpace(request.Label)
	if label == "" {
		return nil, customError.WrapValidation("label is required")
	}
	if !request.Amount.IsPositive() {
		return nil, customError.WrapValidation("amount must be greater than 0")
	}
	if !request.PaymentIntervalUnit.IsValid() {
		return nil, customError.WrapValidation(fmt.Sprintf("unknown payment interval unit %q", request.PaymentIntervalUnit))
	}
	if request.PaymentIntervalValue < 1 {
		return nil, customError.WrapValidation("payment_interval_value must be at least 1")
	}
	if request.StartDate.IsZero() {
		return nil, customError.WrapInvalidDate("start_date", "is required")
	}
	if !request.EndDate.IsZero() && !request.EndDate.After(request.StartDate) {
		return nil, customError.WrapInvalidDate("end_date", "must be after start_date")
	}

	if _, err := s.borrowers.GetByID(ctx, request.PayerID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	fi := &domain.FixedIncome{
		ID:                   uuid.New(),
		Label:                label,
		PayerID:              request.PayerID,
		Amount:               utils.RoundCurrency(request.Amount),
		PaymentIntervalUnit:  request.PaymentIntervalUnit,
		PaymentIntervalValue: request.PaymentIntervalValue,
		StartDate:            request.StartDate,
		EndDate:              request.EndDate,
		Status:               domain.FixedIncomeStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.fixedIncomes.Create(ctx, fi); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"fixed_income_id": fi.ID,
		"amount":          fi.Amount.StringFixed(2),
	}).Info("fixed income created")

	return fi, nil
}

func (s *LendingService) GetFixedIncome(ctx context.Context, id uuid.UUID) (*domain.FixedIncome, error) {
	return s.fixedIncomes.GetByID(ctx, id)
}

func (s *LendingService) ListFixedIncomes(ctx context.Context, status domain.FixedIncomeStatus) ([]*domain.FixedIncome, error) {
	if status != "" && !isFixedIncomeStatus(status) {
		return nil, customError.WrapValidation(fmt.Sprintf("unknown fixed income status %q", status))
	}
	return s.fixedIncomes.List(ctx, status)
}

func (s *LendingService) UpdateFixedIncomeStatus(ctx context.Context, id uuid.UUID, status domain.FixedIncomeStatus) (*domain.FixedIncome, error) {
	if !isFixedIncomeStatus(status) {
		return nil, customError.WrapValidation(fmt.Sprintf("unknown fixed income status %q", status))
	}

	if err := s.fixedIncomes.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"fixed_income_id": id, "status": status}).Info("fixed income status changed")
	return s.fixedIncomes.GetByID(ctx, id)
}

func isFixedIncomeStatus(status domain.FixedIncomeStatus) bool {
	switch status {
	case domain.FixedIncomeStatusActive, domain.FixedIncomeStatusTerminated, domain.FixedIncomeStatusExpired:
		return true
	}
	return false
}

// GetNextIncomeDate projects the next income payment from the latest one
func (s *LendingService) GetNextIncomeDate(ctx context.Context, id uuid.UUID) (*domain.DueDateResponse, error) {
	fi, err := s.fixedIncomes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	latest, err := s.incomePayments.GetLatestPayment(ctx, fi.ID)
	if err != nil {
		return nil, err
	}

	var last date.Date
	if latest != nil {
		last = latest.PaymentDate
	}

	return &domain.DueDateResponse{
		ID:              fi.ID,
		NextDueDate:     finance.NextIncomeDate(fi, last),
		LastPaymentDate: last,
	}, nil
}

// Income payments carry no balance, so they need no locking or transaction.

func (s *LendingService) CreateIncomePayment(ctx context.Context, request *domain.CreateIncomePaymentRequest) (*domain.IncomePayment, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidPaymentAmount("amount must be greater than 0")
	}
	if request.PaymentDate.IsZero() {
		return nil, customError.WrapInvalidDate("payment_date", "is required")
	}

	if _, err := s.fixedIncomes.GetByID(ctx, request.FixedIncomeID); err != nil {
		return nil, err
	}

	payment := &domain.IncomePayment{
		ID:            uuid.New(),
		FixedIncomeID: request.FixedIncomeID,
		Amount:        utils.RoundCurrency(request.Amount),
		PaymentDate:   request.PaymentDate,
		Notes:         request.Notes,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.incomePayments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"fixed_income_id": payment.FixedIncomeID,
		"payment_id":      payment.ID,
		"amount":          payment.Amount.StringFixed(2),
	}).Info("income payment created")

	return payment, nil
}

// UpdateIncomePayment edits an income payment; moving it requires the
// target fixed income to exist.
func (s *LendingService) UpdateIncomePayment(ctx context.Context, id uuid.UUID, request *domain.UpdateIncomePaymentRequest) (*domain.IncomePayment, error) {
	payment, err := s.incomePayments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.FixedIncomeID != nil && *request.FixedIncomeID != payment.FixedIncomeID {
		if _, err := s.fixedIncomes.GetByID(ctx, *request.FixedIncomeID); err != nil {
			return nil, err
		}
		payment.FixedIncomeID = *request.FixedIncomeID
	}
	if request.Amount != nil {
		if !request.Amount.IsPositive() {
			return nil, customError.WrapInvalidPaymentAmount("amount must be greater than 0")
		}
		payment.Amount = utils.RoundCurrency(*request.Amount)
	}
	if request.PaymentDate != nil {
		if request.PaymentDate.IsZero() {
			return nil, customError.WrapInvalidDate("payment_date", "must not be empty")
		}
		payment.PaymentDate = *request.PaymentDate
	}
	if request.Notes != nil {
		payment.Notes = *request.Notes
	}

	if err := s.incomePayments.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"fixed_income_id": payment.FixedIncomeID,
		"payment_id":      payment.ID,
	}).Info("income payment updated")

	return payment, nil
}

func (s *LendingService) DeleteIncomePayment(ctx context.Context, id uuid.UUID) error {
	if err := s.incomePayments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("payment_id", id).Info("income payment deleted")
	return nil
}

func (s *LendingService) ListIncomePayments(ctx context.Context, fixedIncomeID uuid.UUID) ([]*domain.IncomePayment, error) {
	if _, err := s.fixedIncomes.GetByID(ctx, fixedIncomeID); err != nil {
		return nil, err
	}
	return s.incomePayments.GetByFixedIncomeID(ctx, fixedIncomeID)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/finance"
	"github.com/segyhp/lending-engine/pkg/date"
	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/utils"
)

var maxInterestRate = decimal.NewFromInt(100)

// CreateLoan opens an active loan whose balance starts at the principal
func (s *LendingService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if err := validateLoanRequest(request); err != nil {
		return nil, err
	}

	if _, err := s.borrowers.GetByID(ctx, request.BorrowerID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	principal := utils.RoundCurrency(request.PrincipalAmount)
	loan := &domain.Loan{
		ID:                     uuid.New(),
		BorrowerID:             request.BorrowerID,
		LoanType:               request.LoanType,
		PrincipalAmount:        principal,
		InterestRate:           request.InterestRate,
		CurrentBalance:         principal,
		StartDate:              request.StartDate,
		EndDate:                request.EndDate,
		RepaymentIntervalUnit:  request.RepaymentIntervalUnit,
		RepaymentIntervalValue: request.RepaymentIntervalValue,
		Status:                 domain.LoanStatusActive,
		Notes:                  request.Notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":   loan.ID,
		"loan_type": loan.LoanType,
		"principal": loan.PrincipalAmount.StringFixed(2),
	}).Info("loan created")

	return loan, nil
}

func validateLoanRequest(request *domain.CreateLoanRequest) error {
	switch request.LoanType {
	case domain.LoanTypeInstallment, domain.LoanTypeBullet:
	default:
		return customError.WrapValidation(fmt.Sprintf("unknown loan type %q", request.LoanType))
	}

	if !request.PrincipalAmount.IsPositive() {
		return customError.WrapValidation("principal_amount must be greater than 0")
	}
	if request.InterestRate.IsNegative() || request.InterestRate.GreaterThan(maxInterestRate) {
		return customError.WrapValidation("interest_rate must be between 0 and 100")
	}

	if request.RepaymentIntervalUnit != "" {
		if !request.RepaymentIntervalUnit.IsValid() {
			return customError.WrapValidation(fmt.Sprintf("unknown repayment interval unit %q", request.RepaymentIntervalUnit))
		}
		if request.RepaymentIntervalValue < 1 {
			return customError.WrapValidation("repayment_interval_value must be at least 1")
		}
	}

	if request.StartDate.IsZero() {
		return customError.WrapInvalidDate("start_date", "is required")
	}
	if !request.EndDate.IsZero() && !request.EndDate.After(request.StartDate) {
		return customError.WrapInvalidDate("end_date", "must be after start_date")
	}

	return nil
}

func (s *LendingService) GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return s.loans.GetByID(ctx, id)
}

// ListLoans returns loans with the given status; an empty status lists all
func (s *LendingService) ListLoans(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	if status != "" && !status.IsValid() {
		return nil, customError.WrapValidation(fmt.Sprintf("unknown loan status %q", status))
	}
	return s.loans.List(ctx, status)
}

func (s *LendingService) UpdateLoanStatus(ctx context.Context, id uuid.UUID, status domain.LoanStatus) (*domain.Loan, error) {
	if !status.IsValid() {
		return nil, customError.WrapValidation(fmt.Sprintf("unknown loan status %q", status))
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.loans.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"loan_id": id, "status": status}).Info("loan status changed")
	return s.loans.GetByID(ctx, id)
}

// GetAccruedInterest returns the interest position of a loan on asOf.
// Installment loans report one interval on the current balance; bullet
// loans walk the payment history.
func (s *LendingService) GetAccruedInterest(ctx context.Context, id uuid.UUID, asOf date.Date) (*domain.LoanAccrual, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	accrual := &domain.LoanAccrual{
		LoanID:   loan.ID,
		LoanType: loan.LoanType,
		AsOf:     asOf,
	}

	switch loan.LoanType {
	case domain.LoanTypeBullet:
		summary, err := s.bulletSummary(ctx, loan, asOf)
		if err != nil {
			return nil, err
		}
		accrual.Summary = &summary
		accrual.AccruedInterest = summary.PendingInterest
	default:
		interest, err := finance.CalculateAccruedInterest(loan)
		if err != nil {
			return nil, err
		}
		accrual.AccruedInterest = interest
	}

	return accrual, nil
}

// bulletSummary is cached per loan version: every payment mutation rewrites
// the loan balance, which moves UpdatedAt and so the key.
func (s *LendingService) bulletSummary(ctx context.Context, loan *domain.Loan, asOf date.Date) (domain.InterestSummary, error) {
	key := fmt.Sprintf("accrual:%s:%d:%s", loan.ID, loan.UpdatedAt.UnixNano(), asOf)

	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WithError(err).WithField("loan_id", loan.ID).Warn("accrual cache read failed")
		} else if ok {
			var cached domain.InterestSummary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	payments, err := s.payments.GetByLoanID(ctx, loan.ID)
	if err != nil {
		return domain.InterestSummary{}, err
	}

	summary, err := finance.CalculateBulletAccrual(loan, payments, asOf)
	if err != nil {
		return domain.InterestSummary{}, err
	}

	if s.cache != nil {
		raw, _ := json.Marshal(summary)
		if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
			s.log.WithError(err).WithField("loan_id", loan.ID).Warn("accrual cache write failed")
		}
	}

	return summary, nil
}

// GetNextDueDate projects the next due date from the latest payment
func (s *LendingService) GetNextDueDate(ctx context.Context, id uuid.UUID) (*domain.DueDateResponse, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	latest, err := s.payments.GetLatestPayment(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	var last date.Date
	if latest != nil {
		last = latest.PaymentDate
	}

	return &domain.DueDateResponse{
		ID:              loan.ID,
		NextDueDate:     finance.NextDueDate(loan, last),
		LastPaymentDate: last,
	}, nil
}

// GetBalance reports the stored balance next to the balance rebuilt from
// the payment history.
func (s *LendingService) GetBalance(ctx context.Context, id uuid.UUID, asOf date.Date) (*domain.BalanceResponse, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.GetByLoanID(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	return &domain.BalanceResponse{
		LoanID:                 loan.ID,
		CurrentBalance:         loan.CurrentBalance,
		RealRemainingPrincipal: finance.RemainingPrincipal(loan, payments),
		DaysSinceLastPayment:   finance.DaysSince(loan.StartDate, lastPaymentDate(payments), asOf),
	}, nil
}

// lastPaymentDate returns the latest payment date, or the zero Date.
func lastPaymentDate(payments []*domain.Payment) date.Date {
	var last date.Date
	for _, p := range payments {
		if last.IsZero() || p.PaymentDate.After(last) {
			last = p.PaymentDate
		}
	}
	return last
}

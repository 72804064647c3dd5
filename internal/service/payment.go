package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/finance"
	"github.com/segyhp/lending-engine/internal/repository"
	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/utils"
)

// CreatePayment allocates a payment against an active loan and stores the
// payment, the new balance and, on payoff, the paid_off status in one
// transaction.
func (s *LendingService) CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.Payment, error) {
	if request.Amount != nil && request.HasSplit() {
		return nil, customError.WrapValidation("provide either amount or principal_amount/interest_amount, not both")
	}
	if request.Amount == nil && !request.HasSplit() {
		return nil, customError.WrapValidation("amount or principal_amount/interest_amount is required")
	}
	if request.PaymentDate.IsZero() {
		return nil, customError.WrapInvalidDate("payment_date", "is required")
	}

	unlock := s.locks.Lock(request.LoanID)
	defer unlock()

	var (
		payment     *domain.Payment
		application domain.PaymentApplication
	)

	err := s.tx.WithinTx(ctx, func(loans repository.LoanRepository, payments repository.PaymentRepository) error {
		loan, err := loans.GetByID(ctx, request.LoanID)
		if err != nil {
			return err
		}
		if !loan.IsActive() {
			return customError.WrapLoanNotActive(loan.ID.String(), string(loan.Status))
		}

		application, err = allocate(loan, request)
		if err != nil {
			return err
		}

		payment = &domain.Payment{
			ID:          uuid.New(),
			LoanID:      loan.ID,
			PaymentDate: request.PaymentDate,
			Notes:       request.Notes,
			CreatedAt:   s.now().UTC(),
		}
		payment.SetSplit(application.PrincipalPaid, application.InterestPaid)

		if err := payments.Create(ctx, payment); err != nil {
			return err
		}
		if err := loans.UpdateBalance(ctx, loan.ID, application.NewBalance); err != nil {
			return err
		}
		if application.IsPaidOff {
			return loans.UpdateStatus(ctx, loan.ID, domain.LoanStatusPaidOff)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"loan_id":     payment.LoanID,
		"payment_id":  payment.ID,
		"principal":   payment.PrincipalAmount.StringFixed(2),
		"interest":    payment.InterestAmount.StringFixed(2),
		"new_balance": application.NewBalance.StringFixed(2),
	})
	entry.Info("payment created")
	if application.IsPaidOff {
		entry.Info("loan paid off")
	}

	return payment, nil
}

// allocate splits the request: a total amount goes through the installment
// allocator, an explicit split is applied as given.
func allocate(loan *domain.Loan, request *domain.CreatePaymentRequest) (domain.PaymentApplication, error) {
	if request.Amount != nil {
		if !request.Amount.IsPositive() {
			return domain.PaymentApplication{}, customError.WrapInvalidPaymentAmount("amount must be greater than 0")
		}
		if !utils.IsWholeCents(*request.Amount) {
			return domain.PaymentApplication{}, customError.WrapInvalidPaymentAmount("amount must not have fractions of a cent")
		}
		return finance.ApplyPayment(loan, *request.Amount)
	}

	principal, interest := valueOrZero(request.PrincipalAmount), valueOrZero(request.InterestAmount)
	if err := validateSplit(principal, interest); err != nil {
		return domain.PaymentApplication{}, err
	}
	return finance.ApplyBulletLoanPayment(loan.CurrentBalance, interest, principal), nil
}

func validateSplit(principal, interest decimal.Decimal) error {
	if principal.IsNegative() || interest.IsNegative() {
		return customError.WrapInvalidPaymentAmount("principal_amount and interest_amount must not be negative")
	}
	if principal.Add(interest).IsZero() {
		return customError.WrapInvalidPaymentAmount("payment must not be zero")
	}
	if !utils.IsWholeCents(principal) || !utils.IsWholeCents(interest) {
		return customError.WrapInvalidPaymentAmount("principal_amount and interest_amount must not have fractions of a cent")
	}
	return nil
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func (s *LendingService) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// ListPayments returns a loan's payments, oldest first
func (s *LendingService) ListPayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error) {
	if _, err := s.loans.GetByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.payments.GetByLoanID(ctx, loanID)
}

// UpdatePayment edits a payment and corrects the balance of every loan it
// touches. Loan status is left as it is.
func (s *LendingService) UpdatePayment(ctx context.Context, id uuid.UUID, request *domain.UpdatePaymentRequest) (*domain.Payment, error) {
	existing, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	targetLoanID := existing.LoanID
	if request.LoanID != nil {
		targetLoanID = *request.LoanID
	}

	unlock := s.locks.Lock(existing.LoanID, targetLoanID)
	defer unlock()

	var updated domain.Payment
	err = s.tx.WithinTx(ctx, func(loans repository.LoanRepository, payments repository.PaymentRepository) error {
		current, err := payments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		// the payment moved to a loan we did not lock
		if current.LoanID != existing.LoanID {
			return customError.WrapConcurrentUpdate(id.String())
		}

		updated = *current
		updated.LoanID = targetLoanID
		principal, interest := current.PrincipalAmount, current.InterestAmount
		if request.PrincipalAmount != nil {
			principal = *request.PrincipalAmount
		}
		if request.InterestAmount != nil {
			interest = *request.InterestAmount
		}
		if err := validateSplit(principal, interest); err != nil {
			return err
		}
		updated.SetSplit(principal, interest)
		if request.PaymentDate != nil {
			if request.PaymentDate.IsZero() {
				return customError.WrapInvalidDate("payment_date", "must not be empty")
			}
			updated.PaymentDate = *request.PaymentDate
		}
		if request.Notes != nil {
			updated.Notes = *request.Notes
		}

		if targetLoanID == current.LoanID {
			loan, err := loans.GetByID(ctx, current.LoanID)
			if err != nil {
				return err
			}
			if err := payments.Update(ctx, &updated); err != nil {
				return err
			}
			return loans.UpdateBalance(ctx, loan.ID,
				finance.BalanceAfterEdit(loan.CurrentBalance, current.PrincipalAmount, updated.PrincipalAmount))
		}

		source, err := loans.GetByID(ctx, current.LoanID)
		if err != nil {
			return err
		}
		target, err := loans.GetByID(ctx, targetLoanID)
		if err != nil {
			return err
		}
		if err := payments.Update(ctx, &updated); err != nil {
			return err
		}
		if err := loans.UpdateBalance(ctx, source.ID,
			finance.BalanceAfterRemoval(source.CurrentBalance, current.PrincipalAmount)); err != nil {
			return err
		}
		return loans.UpdateBalance(ctx, target.ID,
			finance.BalanceAfterDebit(target.CurrentBalance, updated.PrincipalAmount))
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id": id,
		"loan_id":    updated.LoanID,
		"from_loan":  existing.LoanID,
		"principal":  updated.PrincipalAmount.StringFixed(2),
		"interest":   updated.InterestAmount.StringFixed(2),
	}).Info("payment updated")

	return &updated, nil
}

// DeletePayment removes a payment and gives its principal back to the loan.
func (s *LendingService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	existing, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(existing.LoanID)
	defer unlock()

	err = s.tx.WithinTx(ctx, func(loans repository.LoanRepository, payments repository.PaymentRepository) error {
		current, err := payments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.LoanID != existing.LoanID {
			return customError.WrapConcurrentUpdate(id.String())
		}

		loan, err := loans.GetByID(ctx, current.LoanID)
		if err != nil {
			return err
		}
		if err := payments.Delete(ctx, id); err != nil {
			return err
		}
		return loans.UpdateBalance(ctx, loan.ID, finance.BalanceAfterRemoval(loan.CurrentBalance, current.PrincipalAmount))
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id": id,
		"loan_id":    existing.LoanID,
		"principal":  existing.PrincipalAmount.StringFixed(2),
	}).Info("payment deleted")

	return nil
}

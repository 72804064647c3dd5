package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/finance"
	"github.com/segyhp/lending-engine/internal/repository"
)

// SyncLoanBalances rebuilds every active loan's balance from its payments
// and rewrites the ones that drifted. Status is not touched.
func (s *LendingService) SyncLoanBalances(ctx context.Context) (*domain.ReconcileReport, error) {
	active, err := s.loans.List(ctx, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	report := &domain.ReconcileReport{Corrected: []*domain.BalanceCorrection{}}
	for _, l := range active {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		correction, err := s.syncLoanBalance(ctx, l)
		if err != nil {
			return report, err
		}
		report.Checked++
		if correction != nil {
			report.Corrected = append(report.Corrected, correction)
		}
	}

	s.log.WithFields(logrus.Fields{
		"checked":   report.Checked,
		"corrected": len(report.Corrected),
	}).Info("loan balances reconciled")

	return report, nil
}

func (s *LendingService) syncLoanBalance(ctx context.Context, l *domain.Loan) (*domain.BalanceCorrection, error) {
	unlock := s.locks.Lock(l.ID)
	defer unlock()

	var correction *domain.BalanceCorrection
	err := s.tx.WithinTx(ctx, func(loans repository.LoanRepository, payments repository.PaymentRepository) error {
		loan, err := loans.GetByID(ctx, l.ID)
		if err != nil {
			return err
		}

		history, err := payments.GetByLoanID(ctx, loan.ID)
		if err != nil {
			return err
		}

		expected := finance.RemainingPrincipal(loan, history)
		if expected.Equal(loan.CurrentBalance) {
			return nil
		}

		correction = &domain.BalanceCorrection{
			LoanID:   loan.ID,
			Stored:   loan.CurrentBalance,
			Expected: expected,
		}
		return loans.UpdateBalance(ctx, loan.ID, expected)
	})
	if err != nil {
		return nil, err
	}

	if correction != nil {
		s.log.WithFields(logrus.Fields{
			"loan_id":  correction.LoanID,
			"stored":   correction.Stored.StringFixed(2),
			"expected": correction.Expected.StringFixed(2),
		}).Warn("loan balance drifted from payment history")
	}

	return correction, nil
}

package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/finance"
	"github.com/segyhp/lending-engine/pkg/date"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

// GetUpcomingPayments lists the next expected payment of every active loan
// and fixed income that falls due on or before asOf + withinDays. Overdue
// items are included. The result is ordered by due date.
func (s *LendingService) GetUpcomingPayments(ctx context.Context, asOf date.Date, withinDays int) ([]*domain.UpcomingPayment, error) {
	if withinDays < 0 {
		return nil, customError.WrapValidation("within_days must not be negative")
	}
	horizon := asOf.AddDays(withinDays)

	borrowers := map[uuid.UUID]*domain.Borrower{}
	borrower := func(id uuid.UUID) (*domain.Borrower, error) {
		if b, ok := borrowers[id]; ok {
			return b, nil
		}
		b, err := s.borrowers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		borrowers[id] = b
		return b, nil
	}

	upcoming := []*domain.UpcomingPayment{}

	loans, err := s.loans.List(ctx, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		item, err := s.upcomingForLoan(ctx, loan, asOf)
		if err != nil {
			return nil, err
		}
		if item.DueDate.After(horizon) {
			continue
		}

		b, err := borrower(loan.BorrowerID)
		if err != nil {
			return nil, err
		}
		item.BorrowerName = b.Name
		item.BorrowerEmail = b.Email
		upcoming = append(upcoming, item)
	}

	incomes, err := s.fixedIncomes.List(ctx, domain.FixedIncomeStatusActive)
	if err != nil {
		return nil, err
	}
	for _, fi := range incomes {
		latest, err := s.incomePayments.GetLatestPayment(ctx, fi.ID)
		if err != nil {
			return nil, err
		}
		var last date.Date
		if latest != nil {
			last = latest.PaymentDate
		}

		due := finance.NextIncomeDate(fi, last)
		if due.After(horizon) {
			continue
		}

		b, err := borrower(fi.PayerID)
		if err != nil {
			return nil, err
		}

		label := fi.Label
		if label == "" {
			label = "Fixed Income"
		}
		upcoming = append(upcoming, &domain.UpcomingPayment{
			ID:                   fi.ID,
			Kind:                 domain.UpcomingKindFixedIncome,
			BorrowerName:         b.Name,
			BorrowerEmail:        b.Email,
			AssetType:            label,
			DueDate:              due,
			DaysUntilDue:         asOf.DaysUntil(due),
			AccruedInterest:      finance.AccruedIncome(fi),
			DaysSinceLastPayment: finance.DaysSince(fi.StartDate, last, asOf),
			CurrentBalance:       decimal.Zero,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})

	return upcoming, nil
}

func (s *LendingService) upcomingForLoan(ctx context.Context, loan *domain.Loan, asOf date.Date) (*domain.UpcomingPayment, error) {
	history, err := s.payments.GetByLoanID(ctx, loan.ID)
	if err != nil {
		return nil, err
	}
	last := lastPaymentDate(history)

	var accrued decimal.Decimal
	if loan.LoanType == domain.LoanTypeBullet {
		summary, err := s.bulletSummary(ctx, loan, asOf)
		if err != nil {
			return nil, err
		}
		accrued = summary.PendingInterest
	} else {
		accrued, err = finance.CalculateAccruedInterest(loan)
		if err != nil {
			return nil, err
		}
	}

	due := finance.NextDueDate(loan, last)
	remaining := finance.RemainingPrincipal(loan, history)

	return &domain.UpcomingPayment{
		ID:                     loan.ID,
		Kind:                   domain.UpcomingKindLoan,
		AssetType:              string(loan.LoanType),
		DueDate:                due,
		DaysUntilDue:           asOf.DaysUntil(due),
		AccruedInterest:        accrued,
		DaysSinceLastPayment:   finance.DaysSince(loan.StartDate, last, asOf),
		CurrentBalance:         loan.CurrentBalance,
		RealRemainingPrincipal: &remaining,
	}, nil
}

package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) result(args mock.Arguments) (interface{}, error) {
	return args.Get(0), args.Error(1)
}

func (m *mockService) CreateBorrower(ctx context.Context, request *domain.CreateBorrowerRequest) (*domain.Borrower, error) {
	v, err := m.result(m.Called(ctx, request))
	b, _ := v.(*domain.Borrower)
	return b, err
}

func (m *mockService) GetBorrower(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	v, err := m.result(m.Called(ctx, id))
	b, _ := v.(*domain.Borrower)
	return b, err
}

func (m *mockService) ListBorrowers(ctx context.Context) ([]*domain.Borrower, error) {
	v, err := m.result(m.Called(ctx))
	b, _ := v.([]*domain.Borrower)
	return b, err
}

func (m *mockService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	v, err := m.result(m.Called(ctx, request))
	l, _ := v.(*domain.Loan)
	return l, err
}

func (m *mockService) GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	v, err := m.result(m.Called(ctx, id))
	l, _ := v.(*domain.Loan)
	return l, err
}

func (m *mockService) ListLoans(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	v, err := m.result(m.Called(ctx, status))
	l, _ := v.([]*domain.Loan)
	return l, err
}

func (m *mockService) UpdateLoanStatus(ctx context.Context, id uuid.UUID, status domain.LoanStatus) (*domain.Loan, error) {
	v, err := m.result(m.Called(ctx, id, status))
	l, _ := v.(*domain.Loan)
	return l, err
}

func (m *mockService) GetAccruedInterest(ctx context.Context, id uuid.UUID, asOf date.Date) (*domain.LoanAccrual, error) {
	v, err := m.result(m.Called(ctx, id, asOf))
	a, _ := v.(*domain.LoanAccrual)
	return a, err
}

func (m *mockService) GetNextDueDate(ctx context.Context, id uuid.UUID) (*domain.DueDateResponse, error) {
	v, err := m.result(m.Called(ctx, id))
	d, _ := v.(*domain.DueDateResponse)
	return d, err
}

func (m *mockService) GetBalance(ctx context.Context, id uuid.UUID, asOf date.Date) (*domain.BalanceResponse, error) {
	v, err := m.result(m.Called(ctx, id, asOf))
	b, _ := v.(*domain.BalanceResponse)
	return b, err
}

func (m *mockService) CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.Payment, error) {
	v, err := m.result(m.Called(ctx, request))
	p, _ := v.(*domain.Payment)
	return p, err
}

func (m *mockService) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	v, err := m.result(m.Called(ctx, id))
	p, _ := v.(*domain.Payment)
	return p, err
}

func (m *mockService) ListPayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error) {
	v, err := m.result(m.Called(ctx, loanID))
	p, _ := v.([]*domain.Payment)
	return p, err
}

func (m *mockService) UpdatePayment(ctx context.Context, id uuid.UUID, request *domain.UpdatePaymentRequest) (*domain.Payment, error) {
	v, err := m.result(m.Called(ctx, id, request))
	p, _ := v.(*domain.Payment)
	return p, err
}

func (m *mockService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) GetUpcomingPayments(ctx context.Context, asOf date.Date, withinDays int) ([]*domain.UpcomingPayment, error) {
	v, err := m.result(m.Called(ctx, asOf, withinDays))
	u, _ := v.([]*domain.UpcomingPayment)
	return u, err
}

func (m *mockService) SyncLoanBalances(ctx context.Context) (*domain.ReconcileReport, error) {
	v, err := m.result(m.Called(ctx))
	r, _ := v.(*domain.ReconcileReport)
	return r, err
}

func (m *mockService) CreateFixedIncome(ctx context.Context, request *domain.CreateFixedIncomeRequest) (*domain.FixedIncome, error) {
	v, err := m.result(m.Called(ctx, request))
	f, _ := v.(*domain.FixedIncome)
	return f, err
}

func (m *mockService) GetFixedIncome(ctx context.Context, id uuid.UUID) (*domain.FixedIncome, error) {
	v, err := m.result(m.Called(ctx, id))
	f, _ := v.(*domain.FixedIncome)
	return f, err
}

func (m *mockService) ListFixedIncomes(ctx context.Context, status domain.FixedIncomeStatus) ([]*domain.FixedIncome, error) {
	v, err := m.result(m.Called(ctx, status))
	f, _ := v.([]*domain.FixedIncome)
	return f, err
}

func (m *mockService) UpdateFixedIncomeStatus(ctx context.Context, id uuid.UUID, status domain.FixedIncomeStatus) (*domain.FixedIncome, error) {
	v, err := m.result(m.Called(ctx, id, status))
	f, _ := v.(*domain.FixedIncome)
	return f, err
}

func (m *mockService) GetNextIncomeDate(ctx context.Context, id uuid.UUID) (*domain.DueDateResponse, error) {
	v, err := m.result(m.Called(ctx, id))
	d, _ := v.(*domain.DueDateResponse)
	return d, err
}

func (m *mockService) CreateIncomePayment(ctx context.Context, request *domain.CreateIncomePaymentRequest) (*domain.IncomePayment, error) {
	v, err := m.result(m.Called(ctx, request))
	p, _ := v.(*domain.IncomePayment)
	return p, err
}

func (m *mockService) UpdateIncomePayment(ctx context.Context, id uuid.UUID, request *domain.UpdateIncomePaymentRequest) (*domain.IncomePayment, error) {
	v, err := m.result(m.Called(ctx, id, request))
	p, _ := v.(*domain.IncomePayment)
	return p, err
}

func (m *mockService) DeleteIncomePayment(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) ListIncomePayments(ctx context.Context, fixedIncomeID uuid.UUID) ([]*domain.IncomePayment, error) {
	v, err := m.result(m.Called(ctx, fixedIncomeID))
	p, _ := v.([]*domain.IncomePayment)
	return p, err
}

package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
)

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LoanStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetLatestPayment(ctx context.Context, loanID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetTotalPrincipalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockBorrowerRepository struct {
	mock.Mock
}

func (m *MockBorrowerRepository) Create(ctx context.Context, borrower *domain.Borrower) error {
	args := m.Called(ctx, borrower)
	return args.Error(0)
}

func (m *MockBorrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Borrower), args.Error(1)
}

type MockFixedIncomeRepository struct {
	mock.Mock
}

func (m *MockFixedIncomeRepository) Create(ctx context.Context, fi *domain.FixedIncome) error {
	args := m.Called(ctx, fi)
	return args.Error(0)
}

func (m *MockFixedIncomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FixedIncome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedIncome), args.Error(1)
}

func (m *MockFixedIncomeRepository) List(ctx context.Context, status domain.FixedIncomeStatus) ([]*domain.FixedIncome, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FixedIncome), args.Error(1)
}

func (m *MockFixedIncomeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FixedIncomeStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockIncomePaymentRepository struct {
	mock.Mock
}

func (m *MockIncomePaymentRepository) Create(ctx context.Context, payment *domain.IncomePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockIncomePaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.IncomePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomePayment), args.Error(1)
}

func (m *MockIncomePaymentRepository) Update(ctx context.Context, payment *domain.IncomePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockIncomePaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIncomePaymentRepository) GetByFixedIncomeID(ctx context.Context, fixedIncomeID uuid.UUID) ([]*domain.IncomePayment, error) {
	args := m.Called(ctx, fixedIncomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.IncomePayment), args.Error(1)
}

func (m *MockIncomePaymentRepository) GetLatestPayment(ctx context.Context, fixedIncomeID uuid.UUID) (*domain.IncomePayment, error) {
	args := m.Called(ctx, fixedIncomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomePayment), args.Error(1)
}

// MockTransactor runs fn directly against the given mock repositories.
type MockTransactor struct {
	Loans    repository.LoanRepository
	Payments repository.PaymentRepository
}

func (m *MockTransactor) WithinTx(_ context.Context, fn func(loans repository.LoanRepository, payments repository.PaymentRepository) error) error {
	return fn(m.Loans, m.Payments)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

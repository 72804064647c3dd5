package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// List returns loans with the given status, or every loan when status is empty
	List(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error)

	// UpdateBalance overwrites the stored current balance
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// UpdateStatus changes the loan status
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LoanStatus) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// Update rewrites a payment, including the loan it belongs to
	Update(ctx context.Context, payment *domain.Payment) error

	// Delete removes a payment
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByLoanID retrieves all payments for a loan, oldest first
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error)

	// GetLatestPayment gets the most recent payment for a loan; nil when there is none
	GetLatestPayment(ctx context.Context, loanID uuid.UUID) (*domain.Payment, error)

	// GetTotalPrincipalPaid sums the principal part of every payment on a loan
	GetTotalPrincipalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
}

type BorrowerRepository interface {
	Create(ctx context.Context, borrower *domain.Borrower) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error)
	List(ctx context.Context) ([]*domain.Borrower, error)
}

type FixedIncomeRepository interface {
	Create(ctx context.Context, fi *domain.FixedIncome) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FixedIncome, error)
	List(ctx context.Context, status domain.FixedIncomeStatus) ([]*domain.FixedIncome, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FixedIncomeStatus) error
}

type IncomePaymentRepository interface {
	Create(ctx context.Context, payment *domain.IncomePayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.IncomePayment, error)
	Update(ctx context.Context, payment *domain.IncomePayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByFixedIncomeID(ctx context.Context, fixedIncomeID uuid.UUID) ([]*domain.IncomePayment, error)
	GetLatestPayment(ctx context.Context, fixedIncomeID uuid.UUID) (*domain.IncomePayment, error)
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(loans LoanRepository, payments PaymentRepository) error) error
}

// CacheRepository is a string key/value cache. A miss is (_, false, nil).
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

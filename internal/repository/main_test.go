package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/pkg/date"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "lending-repository-test")
	if err != nil {
		panic(fmt.Sprintf("Failed to create temp dir: %v", err))
	}

	testDB, err = repository.Connect(context.Background(), repository.DriverSQLite,
		repository.SQLiteDSN(filepath.Join(dir, "test.db")), repository.PoolConfig{})
	if err != nil {
		panic(fmt.Sprintf("Failed to open test database: %v", err))
	}

	code := m.Run()

	testDB.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cleanupTestData(testDB)
	return testDB
}

func cleanupTestData(db *sqlx.DB) {
	db.Exec("DELETE FROM income_payments")
	db.Exec("DELETE FROM fixed_incomes")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM loans")
	db.Exec("DELETE FROM borrowers")
}

func createBorrower(t *testing.T, db *sqlx.DB) *domain.Borrower {
	t.Helper()
	borrower := &domain.Borrower{
		ID:        uuid.New(),
		Name:      "Maria Lopez",
		Email:     "maria@example.com",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repository.NewBorrowerRepository(db).Create(context.Background(), borrower))
	return borrower
}

func createLoan(t *testing.T, db *sqlx.DB, loanType domain.LoanType, principal string) *domain.Loan {
	t.Helper()
	borrower := createBorrower(t, db)
	now := time.Now().UTC()
	loan := &domain.Loan{
		ID:                     uuid.New(),
		BorrowerID:             borrower.ID,
		LoanType:               loanType,
		PrincipalAmount:        decimal.RequireFromString(principal),
		InterestRate:           decimal.RequireFromString("2.25"),
		CurrentBalance:         decimal.RequireFromString(principal),
		StartDate:              date.MustParse("2024-01-31"),
		RepaymentIntervalUnit:  domain.IntervalMonths,
		RepaymentIntervalValue: 1,
		Status:                 domain.LoanStatusActive,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	require.NoError(t, repository.NewLoanRepository(db).Create(context.Background(), loan))
	return loan
}

func newPayment(loanID uuid.UUID, on string, principal, interest string) *domain.Payment {
	p := &domain.Payment{
		ID:          uuid.New(),
		LoanID:      loanID,
		PaymentDate: date.MustParse(on),
		CreatedAt:   time.Now().UTC(),
	}
	p.SetSplit(decimal.RequireFromString(principal), decimal.RequireFromString(interest))
	return p
}

package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/pkg/date"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "lending-service-test")
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

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// setupLedger returns a service over a clean sqlite database.
func setupLedger(t *testing.T) *LendingService {
	t.Helper()
	for _, table := range []string{"income_payments", "fixed_incomes", "payments", "loans", "borrowers"} {
		_, err := testDB.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
	return NewLendingService(repository.NewRepositories(testDB), repository.NewMemoryCache(), nil, quietLogger())
}

func mustCreateBorrower(t *testing.T, s *LendingService) *domain.Borrower {
	t.Helper()
	borrower, err := s.CreateBorrower(context.Background(), &domain.CreateBorrowerRequest{
		Name:  "Maria Lopez",
		Email: "maria@example.com",
	})
	require.NoError(t, err)
	return borrower
}

func mustCreateLoan(t *testing.T, s *LendingService, loanType domain.LoanType, principal, rate, start string) *domain.Loan {
	t.Helper()
	loan, err := s.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		BorrowerID:             mustCreateBorrower(t, s).ID,
		LoanType:               loanType,
		PrincipalAmount:        dec(principal),
		InterestRate:           dec(rate),
		StartDate:              date.MustParse(start),
		RepaymentIntervalUnit:  domain.IntervalMonths,
		RepaymentIntervalValue: 1,
	})
	require.NoError(t, err)
	return loan
}

func splitPayment(loanID uuid.UUID, on, principal, interest string) *domain.CreatePaymentRequest {
	return &domain.CreatePaymentRequest{
		LoanID:          loanID,
		PrincipalAmount: decPtr(principal),
		InterestAmount:  decPtr(interest),
		PaymentDate:     date.MustParse(on),
	}
}

func requireBalance(t *testing.T, s *LendingService, loanID uuid.UUID, expected string) {
	t.Helper()
	balance, err := s.GetBalance(context.Background(), loanID, date.Today())
	require.NoError(t, err)
	require.True(t, balance.CurrentBalance.Equal(dec(expected)),
		"Expected balance %s, but got %s", expected, balance.CurrentBalance)
	require.True(t, balance.CurrentBalance.Equal(balance.RealRemainingPrincipal),
		"stored balance %s drifted from payment history %s", balance.CurrentBalance, balance.RealRemainingPrincipal)
}

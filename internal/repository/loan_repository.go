package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

const loanColumns = `id, borrower_id, loan_type, principal_amount, interest_rate, current_balance,
	start_date, end_date, repayment_interval_unit, repayment_interval_value, status, notes,
	created_at, updated_at`

type loanRepository struct {
	db sqlx.ExtContext
}

// NewLoanRepository accepts a *sqlx.DB or a *sqlx.Tx.
func NewLoanRepository(db sqlx.ExtContext) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := r.db.Rebind(`
		INSERT INTO loans (` + loanColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.BorrowerID,
		loan.LoanType,
		loan.PrincipalAmount,
		loan.InterestRate,
		loan.CurrentBalance,
		loan.StartDate,
		loan.EndDate,
		loan.RepaymentIntervalUnit,
		loan.RepaymentIntervalValue,
		loan.Status,
		loan.Notes,
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := r.db.Rebind(`SELECT ` + loanColumns + ` FROM loans WHERE id = ?`)

	var loan domain.Loan
	err := sqlx.GetContext(ctx, r.db, &loan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapLoanNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at, id`

	loans := []*domain.Loan{}
	if err := sqlx.SelectContext(ctx, r.db, &loans, r.db.Rebind(query), args...); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loans, nil
}

func (r *loanRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := r.db.Rebind(`
		UPDATE loans
		SET current_balance = ?, updated_at = ?
		WHERE id = ?
	`)

	return r.exec(ctx, id, query, balance, time.Now().UTC(), id)
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LoanStatus) error {
	query := r.db.Rebind(`
		UPDATE loans
		SET status = ?, updated_at = ?
		WHERE id = ?
	`)

	return r.exec(ctx, id, query, status, time.Now().UTC(), id)
}

func (r *loanRepository) exec(ctx context.Context, id uuid.UUID, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if n == 0 {
		return customError.WrapLoanNotFound(id.String())
	}

	return nil
}

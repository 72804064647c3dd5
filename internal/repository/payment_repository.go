package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/internal/domain"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

const paymentColumns = `id, loan_id, amount, payment_type, principal_amount, interest_amount,
	payment_date, notes, created_at`

type paymentRepository struct {
	db sqlx.ExtContext
}

// NewPaymentRepository accepts a *sqlx.DB or a *sqlx.Tx.
func NewPaymentRepository(db sqlx.ExtContext) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := r.db.Rebind(`
		INSERT INTO payments (` + paymentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LoanID,
		payment.Amount,
		payment.PaymentType,
		payment.PrincipalAmount,
		payment.InterestAmount,
		payment.PaymentDate,
		payment.Notes,
		payment.CreatedAt,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := r.db.Rebind(`SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`)

	var payment domain.Payment
	err := sqlx.GetContext(ctx, r.db, &payment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPaymentNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := r.db.Rebind(`
		UPDATE payments
		SET loan_id = ?, amount = ?, payment_type = ?, principal_amount = ?, interest_amount = ?,
			payment_date = ?, notes = ?
		WHERE id = ?
	`)

	res, err := r.db.ExecContext(ctx, query,
		payment.LoanID,
		payment.Amount,
		payment.PaymentType,
		payment.PrincipalAmount,
		payment.InterestAmount,
		payment.PaymentDate,
		payment.Notes,
		payment.ID,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return paymentAffected(res, payment.ID)
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM payments WHERE id = ?`), id)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return paymentAffected(res, id)
}

func (r *paymentRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error) {
	query := r.db.Rebind(`
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE loan_id = ?
		ORDER BY payment_date, created_at
	`)

	payments := []*domain.Payment{}
	if err := sqlx.SelectContext(ctx, r.db, &payments, query, loanID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return payments, nil
}

func (r *paymentRepository) GetLatestPayment(ctx context.Context, loanID uuid.UUID) (*domain.Payment, error) {
	query := r.db.Rebind(`
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE loan_id = ?
		ORDER BY payment_date DESC, created_at DESC
		LIMIT 1
	`)

	var payment domain.Payment
	err := sqlx.GetContext(ctx, r.db, &payment, query, loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &payment, nil
}

// GetTotalPrincipalPaid sums in Go; the amounts are stored as TEXT.
func (r *paymentRepository) GetTotalPrincipalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.Rebind(`SELECT principal_amount FROM payments WHERE loan_id = ?`)

	var amounts []decimal.Decimal
	if err := sqlx.SelectContext(ctx, r.db, &amounts, query, loanID); err != nil {
		return decimal.Zero, customError.WrapDatabaseError(err)
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}

func paymentAffected(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if n == 0 {
		return customError.WrapPaymentNotFound(id.String())
	}
	return nil
}

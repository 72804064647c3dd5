package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/lending-engine/internal/domain"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

const incomePaymentColumns = `id, fixed_income_id, amount, payment_date, notes, created_at`

type incomePaymentRepository struct {
	db sqlx.ExtContext
}

func NewIncomePaymentRepository(db sqlx.ExtContext) IncomePaymentRepository {
	return &incomePaymentRepository{db: db}
}

func (r *incomePaymentRepository) Create(ctx context.Context, payment *domain.IncomePayment) error {
	query := r.db.Rebind(`
		INSERT INTO income_payments (` + incomePaymentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.FixedIncomeID,
		payment.Amount,
		payment.PaymentDate,
		payment.Notes,
		payment.CreatedAt,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *incomePaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.IncomePayment, error) {
	query := r.db.Rebind(`SELECT ` + incomePaymentColumns + ` FROM income_payments WHERE id = ?`)

	var payment domain.IncomePayment
	err := sqlx.GetContext(ctx, r.db, &payment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapIncomePaymentNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &payment, nil
}

func (r *incomePaymentRepository) Update(ctx context.Context, payment *domain.IncomePayment) error {
	query := r.db.Rebind(`
		UPDATE income_payments
		SET fixed_income_id = ?, amount = ?, payment_date = ?, notes = ?
		WHERE id = ?
	`)

	res, err := r.db.ExecContext(ctx, query,
		payment.FixedIncomeID,
		payment.Amount,
		payment.PaymentDate,
		payment.Notes,
		payment.ID,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return incomePaymentAffected(res, payment.ID)
}

func (r *incomePaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM income_payments WHERE id = ?`), id)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return incomePaymentAffected(res, id)
}

func (r *incomePaymentRepository) GetByFixedIncomeID(ctx context.Context, fixedIncomeID uuid.UUID) ([]*domain.IncomePayment, error) {
	query := r.db.Rebind(`
		SELECT ` + incomePaymentColumns + `
		FROM income_payments
		WHERE fixed_income_id = ?
		ORDER BY payment_date, created_at
	`)

	payments := []*domain.IncomePayment{}
	if err := sqlx.SelectContext(ctx, r.db, &payments, query, fixedIncomeID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return payments, nil
}

func (r *incomePaymentRepository) GetLatestPayment(ctx context.Context, fixedIncomeID uuid.UUID) (*domain.IncomePayment, error) {
	query := r.db.Rebind(`
		SELECT ` + incomePaymentColumns + `
		FROM income_payments
		WHERE fixed_income_id = ?
		ORDER BY payment_date DESC, created_at DESC
		LIMIT 1
	`)

	var payment domain.IncomePayment
	err := sqlx.GetContext(ctx, r.db, &payment, query, fixedIncomeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &payment, nil
}

func incomePaymentAffected(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if n == 0 {
		return customError.WrapIncomePaymentNotFound(id.String())
	}
	return nil
}

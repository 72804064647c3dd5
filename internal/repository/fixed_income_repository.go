package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/lending-engine/internal/domain"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

const fixedIncomeColumns = `id, label, payer_id, amount, payment_interval_unit, payment_interval_value,
	start_date, end_date, status, created_at, updated_at`

type fixedIncomeRepository struct {
	db sqlx.ExtContext
}

func NewFixedIncomeRepository(db sqlx.ExtContext) FixedIncomeRepository {
	return &fixedIncomeRepository{db: db}
}

func (r *fixedIncomeRepository) Create(ctx context.Context, fi *domain.FixedIncome) error {
	query := r.db.Rebind(`
		INSERT INTO fixed_incomes (` + fixedIncomeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		fi.ID,
		fi.Label,
		fi.PayerID,
		fi.Amount,
		fi.PaymentIntervalUnit,
		fi.PaymentIntervalValue,
		fi.StartDate,
		fi.EndDate,
		fi.Status,
		fi.CreatedAt,
		fi.UpdatedAt,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *fixedIncomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FixedIncome, error) {
	query := r.db.Rebind(`SELECT ` + fixedIncomeColumns + ` FROM fixed_incomes WHERE id = ?`)

	var fi domain.FixedIncome
	err := sqlx.GetContext(ctx, r.db, &fi, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapFixedIncomeNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &fi, nil
}

func (r *fixedIncomeRepository) List(ctx context.Context, status domain.FixedIncomeStatus) ([]*domain.FixedIncome, error) {
	query := `SELECT ` + fixedIncomeColumns + ` FROM fixed_incomes`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at, id`

	incomes := []*domain.FixedIncome{}
	if err := sqlx.SelectContext(ctx, r.db, &incomes, r.db.Rebind(query), args...); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return incomes, nil
}

func (r *fixedIncomeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FixedIncomeStatus) error {
	query := r.db.Rebind(`
		UPDATE fixed_incomes
		SET status = ?, updated_at = ?
		WHERE id = ?
	`)

	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if n == 0 {
		return customError.WrapFixedIncomeNotFound(id.String())
	}

	return nil
}

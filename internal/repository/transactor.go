package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	customError "github.com/segyhp/lending-engine/pkg/errors"
)

type sqlxTransactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlxTransactor{db: db}
}

func (t *sqlxTransactor) WithinTx(ctx context.Context, fn func(loans LoanRepository, payments PaymentRepository) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	if err := fn(NewLoanRepository(tx), NewPaymentRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

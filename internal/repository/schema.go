package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Money and dates are TEXT so the same schema runs on postgres and sqlite
// without losing decimal precision.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS borrowers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		borrower_id TEXT NOT NULL REFERENCES borrowers(id),
		loan_type TEXT NOT NULL,
		principal_amount TEXT NOT NULL,
		interest_rate TEXT NOT NULL,
		current_balance TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		repayment_interval_unit TEXT NOT NULL DEFAULT '',
		repayment_interval_value INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL REFERENCES loans(id),
		amount TEXT NOT NULL,
		payment_type TEXT NOT NULL,
		principal_amount TEXT NOT NULL,
		interest_amount TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_loan_date ON payments (loan_id, payment_date)`,
	`CREATE TABLE IF NOT EXISTS fixed_incomes (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		payer_id TEXT NOT NULL REFERENCES borrowers(id),
		amount TEXT NOT NULL,
		payment_interval_unit TEXT NOT NULL,
		payment_interval_value INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS income_payments (
		id TEXT PRIMARY KEY,
		fixed_income_id TEXT NOT NULL REFERENCES fixed_incomes(id),
		amount TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_income_payments_fixed_income_date ON income_payments (fixed_income_id, payment_date)`,
}

// Migrate creates any missing tables and indexes. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

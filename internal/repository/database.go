package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// PoolConfig limits the connection pool. Zero values keep the driver defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories groups every store built on one database handle.
type Repositories struct {
	Loans          LoanRepository
	Payments       PaymentRepository
	Borrowers      BorrowerRepository
	FixedIncomes   FixedIncomeRepository
	IncomePayments IncomePaymentRepository
	Tx             Transactor
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Loans:          NewLoanRepository(db),
		Payments:       NewPaymentRepository(db),
		Borrowers:      NewBorrowerRepository(db),
		FixedIncomes:   NewFixedIncomeRepository(db),
		IncomePayments: NewIncomePaymentRepository(db),
		Tx:             NewTransactor(db),
	}
}

// Connect opens the database, applies the pool limits and migrates the schema.
// The driver must already be registered by the caller.
func Connect(ctx context.Context, driver, dsn string, pool PoolConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// SQLiteDSN builds a go-sqlite3 DSN for a database file with foreign keys on.
// Transactions take the write lock up front and wait on a busy database.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", path)
}

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

type borrowerRepository struct {
	db sqlx.ExtContext
}

func NewBorrowerRepository(db sqlx.ExtContext) BorrowerRepository {
	return &borrowerRepository{db: db}
}

func (r *borrowerRepository) Create(ctx context.Context, borrower *domain.Borrower) error {
	query := r.db.Rebind(`
		INSERT INTO borrowers (id, name, email, phone, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		borrower.ID,
		borrower.Name,
		borrower.Email,
		borrower.Phone,
		borrower.Address,
		borrower.CreatedAt,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *borrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	query := r.db.Rebind(`
		SELECT id, name, email, phone, address, created_at
		FROM borrowers
		WHERE id = ?
	`)

	var borrower domain.Borrower
	err := sqlx.GetContext(ctx, r.db, &borrower, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapBorrowerNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &borrower, nil
}

func (r *borrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	borrowers := []*domain.Borrower{}
	err := sqlx.SelectContext(ctx, r.db, &borrowers, `
		SELECT id, name, email, phone, address, created_at
		FROM borrowers
		ORDER BY name, id
	`)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return borrowers, nil
}

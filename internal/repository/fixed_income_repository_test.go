package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/pkg/date"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

func createFixedIncome(t *testing.T, repo repository.FixedIncomeRepository, payerID uuid.UUID, label string) *domain.FixedIncome {
	t.Helper()
	now := time.Now().UTC()
	fi := &domain.FixedIncome{
		ID:                   uuid.New(),
		Label:                label,
		PayerID:              payerID,
		Amount:               decimal.RequireFromString("1500"),
		PaymentIntervalUnit:  domain.IntervalMonths,
		PaymentIntervalValue: 1,
		StartDate:            date.MustParse("2024-01-01"),
		EndDate:              date.MustParse("2025-01-01"),
		Status:               domain.FixedIncomeStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	require.NoError(t, repo.Create(context.Background(), fi))
	return fi
}

func TestFixedIncomeRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewFixedIncomeRepository(db)
	ctx := context.Background()

	payer := createBorrower(t, db)
	lease := createFixedIncome(t, repo, payer.ID, "Warehouse lease")
	rent := createFixedIncome(t, repo, payer.ID, "Apartment rent")

	result, err := repo.GetByID(ctx, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse lease", result.Label)
	assert.Equal(t, "2025-01-01", result.EndDate.String())
	assert.True(t, decimal.RequireFromString("1500").Equal(result.Amount))

	require.NoError(t, repo.UpdateStatus(ctx, rent.ID, domain.FixedIncomeStatusTerminated))

	active, err := repo.List(ctx, domain.FixedIncomeStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, lease.ID, active[0].ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, customError.ErrFixedIncomeNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), domain.FixedIncomeStatusExpired), customError.ErrFixedIncomeNotFound)
}

func TestIncomePaymentRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	incomes := repository.NewFixedIncomeRepository(db)
	repo := repository.NewIncomePaymentRepository(db)
	ctx := context.Background()

	payer := createBorrower(t, db)
	lease := createFixedIncome(t, incomes, payer.ID, "Warehouse lease")
	rent := createFixedIncome(t, incomes, payer.ID, "Apartment rent")

	latest, err := repo.GetLatestPayment(ctx, lease.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	feb := &domain.IncomePayment{ID: uuid.New(), FixedIncomeID: lease.ID, Amount: decimal.RequireFromString("1500"), PaymentDate: date.MustParse("2024-02-01"), CreatedAt: time.Now().UTC()}
	jan := &domain.IncomePayment{ID: uuid.New(), FixedIncomeID: lease.ID, Amount: decimal.RequireFromString("1500"), PaymentDate: date.MustParse("2024-01-01"), CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, feb))
	require.NoError(t, repo.Create(ctx, jan))

	payments, err := repo.GetByFixedIncomeID(ctx, lease.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, jan.ID, payments[0].ID)

	latest, err = repo.GetLatestPayment(ctx, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, feb.ID, latest.ID)

	feb.FixedIncomeID = rent.ID
	feb.Amount = decimal.RequireFromString("1200")
	require.NoError(t, repo.Update(ctx, feb))

	moved, err := repo.GetByID(ctx, feb.ID)
	require.NoError(t, err)
	assert.Equal(t, rent.ID, moved.FixedIncomeID)
	assert.True(t, decimal.RequireFromString("1200").Equal(moved.Amount))

	require.NoError(t, repo.Delete(ctx, jan.ID))
	_, err = repo.GetByID(ctx, jan.ID)
	assert.ErrorIs(t, err, customError.ErrIncomePaymentNotFound)
}

func TestBorrowerRepository_GetAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewBorrowerRepository(db)
	ctx := context.Background()

	borrower := createBorrower(t, db)

	result, err := repo.GetByID(ctx, borrower.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", result.Name)
	assert.Equal(t, "maria@example.com", result.Email)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, customError.ErrBorrowerNotFound)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/config"
	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

const defaultCacheTTL = 10 * time.Minute

type LendingService struct {
	loans          repository.LoanRepository
	payments       repository.PaymentRepository
	borrowers      repository.BorrowerRepository
	fixedIncomes   repository.FixedIncomeRepository
	incomePayments repository.IncomePaymentRepository
	tx             repository.Transactor
	cache          repository.CacheRepository
	cacheTTL       time.Duration
	log            *logrus.Logger
	locks          *keyedMutex
	now            func() time.Time
}

// NewLendingService wires the service. cache may be nil, which disables
// caching of accrual summaries.
func NewLendingService(
	repos *repository.Repositories,
	cache repository.CacheRepository,
	cfg *config.Config,
	log *logrus.Logger,
) *LendingService {
	ttl := defaultCacheTTL
	if cfg != nil {
		ttl = cfg.GetCacheTTL()
	}
	if log == nil {
		log = logrus.New()
	}

	return &LendingService{
		loans:          repos.Loans,
		payments:       repos.Payments,
		borrowers:      repos.Borrowers,
		fixedIncomes:   repos.FixedIncomes,
		incomePayments: repos.IncomePayments,
		tx:             repos.Tx,
		cache:          cache,
		cacheTTL:       ttl,
		log:            log,
		locks:          newKeyedMutex(),
		now:            time.Now,
	}
}

// CreateBorrower registers a new borrower
func (s *LendingService) CreateBorrower(ctx context.Context, request *domain.CreateBorrowerRequest) (*domain.Borrower, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, customError.WrapValidation("name is required")
	}

	borrower := &domain.Borrower{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.TrimSpace(request.Email),
		Phone:     strings.TrimSpace(request.Phone),
		Address:   strings.TrimSpace(request.Address),
		CreatedAt: s.now().UTC(),
	}

	if err := s.borrowers.Create(ctx, borrower); err != nil {
		return nil, err
	}

	s.log.WithField("borrower_id", borrower.ID).Info("borrower created")
	return borrower, nil
}

func (s *LendingService) GetBorrower(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	return s.borrowers.GetByID(ctx, id)
}

func (s *LendingService) ListBorrowers(ctx context.Context) ([]*domain.Borrower, error) {
	return s.borrowers.List(ctx)
}

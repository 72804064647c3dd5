package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/response"
)

const defaultUpcomingWindowDays = 7

// LendingService is implemented by *service.LendingService
type LendingService interface {
	CreateBorrower(ctx context.Context, request *domain.CreateBorrowerRequest) (*domain.Borrower, error)
	GetBorrower(ctx context.Context, id uuid.UUID) (*domain.Borrower, error)
	ListBorrowers(ctx context.Context) ([]*domain.Borrower, error)

	CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error)
	GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	ListLoans(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error)
	UpdateLoanStatus(ctx context.Context, id uuid.UUID, status domain.LoanStatus) (*domain.Loan, error)
	GetAccruedInterest(ctx context.Context, id uuid.UUID, asOf date.Date) (*domain.LoanAccrual, error)
	GetNextDueDate(ctx context.Context, id uuid.UUID) (*domain.DueDateResponse, error)
	GetBalance(ctx context.Context, id uuid.UUID, asOf date.Date) (*domain.BalanceResponse, error)

	CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	ListPayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, request *domain.UpdatePaymentRequest) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error

	GetUpcomingPayments(ctx context.Context, asOf date.Date, withinDays int) ([]*domain.UpcomingPayment, error)
	SyncLoanBalances(ctx context.Context) (*domain.ReconcileReport, error)

	CreateFixedIncome(ctx context.Context, request *domain.CreateFixedIncomeRequest) (*domain.FixedIncome, error)
	GetFixedIncome(ctx context.Context, id uuid.UUID) (*domain.FixedIncome, error)
	ListFixedIncomes(ctx context.Context, status domain.FixedIncomeStatus) ([]*domain.FixedIncome, error)
	UpdateFixedIncomeStatus(ctx context.Context, id uuid.UUID, status domain.FixedIncomeStatus) (*domain.FixedIncome, error)
	GetNextIncomeDate(ctx context.Context, id uuid.UUID) (*domain.DueDateResponse, error)
	CreateIncomePayment(ctx context.Context, request *domain.CreateIncomePaymentRequest) (*domain.IncomePayment, error)
	UpdateIncomePayment(ctx context.Context, id uuid.UUID, request *domain.UpdateIncomePaymentRequest) (*domain.IncomePayment, error)
	DeleteIncomePayment(ctx context.Context, id uuid.UUID) error
	ListIncomePayments(ctx context.Context, fixedIncomeID uuid.UUID) ([]*domain.IncomePayment, error)
}

type LendingHandler struct {
	service   LendingService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewLendingHandler(service LendingService, logger *logrus.Logger) *LendingHandler {
	return &LendingHandler{
		service:   service,
		validator: newValidator(),
		logger:    logger,
	}
}

// Routes mounts the API on api, normally the /api/v1 subrouter.
func (h *LendingHandler) Routes(api *mux.Router) {
	api.HandleFunc("/borrowers", h.CreateBorrower).Methods(http.MethodPost)
	api.HandleFunc("/borrowers", h.ListBorrowers).Methods(http.MethodGet)
	api.HandleFunc("/borrowers/{id}", h.GetBorrower).Methods(http.MethodGet)

	api.HandleFunc("/loans", h.CreateLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans", h.ListLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", h.GetLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/status", h.UpdateLoanStatus).Methods(http.MethodPatch)
	api.HandleFunc("/loans/{id}/accrued-interest", h.GetAccruedInterest).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/next-due-date", h.GetNextDueDate).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/balance", h.GetBalance).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/payments", h.ListPayments).Methods(http.MethodGet)

	api.HandleFunc("/payments", h.CreatePayment).Methods(http.MethodPost)
	api.HandleFunc("/payments/{id}", h.GetPayment).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", h.UpdatePayment).Methods(http.MethodPut)
	api.HandleFunc("/payments/{id}", h.DeletePayment).Methods(http.MethodDelete)

	api.HandleFunc("/upcoming-payments", h.GetUpcomingPayments).Methods(http.MethodGet)
	api.HandleFunc("/reconcile", h.SyncLoanBalances).Methods(http.MethodPost)

	api.HandleFunc("/fixed-incomes", h.CreateFixedIncome).Methods(http.MethodPost)
	api.HandleFunc("/fixed-incomes", h.ListFixedIncomes).Methods(http.MethodGet)
	api.HandleFunc("/fixed-incomes/{id}", h.GetFixedIncome).Methods(http.MethodGet)
	api.HandleFunc("/fixed-incomes/{id}/status", h.UpdateFixedIncomeStatus).Methods(http.MethodPatch)
	api.HandleFunc("/fixed-incomes/{id}/next-income-date", h.GetNextIncomeDate).Methods(http.MethodGet)
	api.HandleFunc("/fixed-incomes/{id}/payments", h.ListIncomePayments).Methods(http.MethodGet)

	api.HandleFunc("/income-payments", h.CreateIncomePayment).Methods(http.MethodPost)
	api.HandleFunc("/income-payments/{id}", h.UpdateIncomePayment).Methods(http.MethodPut)
	api.HandleFunc("/income-payments/{id}", h.DeleteIncomePayment).Methods(http.MethodDelete)
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler may continue.
func (h *LendingHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		response.ErrorWithCode(w, http.StatusUnprocessableEntity, customError.ErrCodeValidation, validationMessage(err), nil)
		return false
	}

	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid id", err)
		return uuid.Nil, false
	}
	return id, true
}

// asOf reads the optional as_of query parameter; it defaults to today.
func asOf(w http.ResponseWriter, r *http.Request) (date.Date, bool) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return date.Today(), true
	}

	d, err := date.Parse(raw)
	if err != nil {
		response.ErrorWithCode(w, http.StatusUnprocessableEntity, customError.ErrCodeInvalidDate, "as_of must be YYYY-MM-DD", err)
		return date.Date{}, false
	}
	return d, true
}

// writeError maps service errors onto HTTP statuses.
func (h *LendingHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := customError.CodeOf(err)
	message := err.Error()
	var be *customError.BusinessError
	if errors.As(err, &be) {
		message = be.Message
	}

	status := statusFor(code)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		message = "Internal server error"
	}

	response.ErrorWithCode(w, status, code, message, nil)
}

func statusFor(code string) int {
	switch code {
	case customError.ErrCodeLoanNotFound,
		customError.ErrCodePaymentNotFound,
		customError.ErrCodeBorrowerNotFound,
		customError.ErrCodeFixedIncomeNotFound,
		customError.ErrCodeIncomePaymentNotFound:
		return http.StatusNotFound
	case customError.ErrCodeInvalidOperation:
		return http.StatusBadRequest
	case customError.ErrCodeValidation,
		customError.ErrCodeInvalidDate,
		customError.ErrCodeInvalidPaymentAmount:
		return http.StatusUnprocessableEntity
	case customError.ErrCodeLoanNotActive,
		customError.ErrCodeConcurrentUpdate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *LendingHandler) CreateBorrower(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateBorrowerRequest
	if !h.decode(w, r, &request) {
		return
	}

	borrower, err := h.service.CreateBorrower(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, borrower)
}

func (h *LendingHandler) GetBorrower(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	borrower, err := h.service.GetBorrower(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, borrower)
}

func (h *LendingHandler) ListBorrowers(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.service.ListBorrowers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, borrowers)
}

func (h *LendingHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if !h.decode(w, r, &request) {
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, loan)
}

func (h *LendingHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, loan)
}

func (h *LendingHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListLoans(r.Context(), domain.LoanStatus(r.URL.Query().Get("status")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, loans)
}

func (h *LendingHandler) UpdateLoanStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request domain.UpdateLoanStatusRequest
	if !h.decode(w, r, &request) {
		return
	}

	loan, err := h.service.UpdateLoanStatus(r.Context(), id, request.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, loan)
}

func (h *LendingHandler) GetAccruedInterest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	on, ok := asOf(w, r)
	if !ok {
		return
	}

	accrual, err := h.service.GetAccruedInterest(r.Context(), id, on)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, accrual)
}

func (h *LendingHandler) GetNextDueDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	due, err := h.service.GetNextDueDate(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, due)
}

func (h *LendingHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	on, ok := asOf(w, r)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), id, on)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, balance)
}

func (h *LendingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, payment)
}

func (h *LendingHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, payment)
}

func (h *LendingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, payments)
}

func (h *LendingHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request domain.UpdatePaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	payment, err := h.service.UpdatePayment(r.Context(), id, &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, payment)
}

func (h *LendingHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *LendingHandler) GetUpcomingPayments(w http.ResponseWriter, r *http.Request) {
	on, ok := asOf(w, r)
	if !ok {
		return
	}

	withinDays := defaultUpcomingWindowDays
	if raw := r.URL.Query().Get("within_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "within_days must be an integer", err)
			return
		}
		withinDays = n
	}

	upcoming, err := h.service.GetUpcomingPayments(r.Context(), on, withinDays)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, upcoming)
}

func (h *LendingHandler) SyncLoanBalances(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.SyncLoanBalances(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, report)
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

func newTestRouter(service LendingService) *mux.Router {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := mux.NewRouter()
	NewLendingHandler(service, logger).Routes(router.PathPrefix("/api/v1").Subrouter())
	return router
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreatePayment_Created(t *testing.T) {
	service := &mockService{}
	loanID := uuid.New()
	payment := &domain.Payment{ID: uuid.New(), LoanID: loanID, PaymentDate: date.MustParse("2024-02-01")}
	payment.SetSplit(decimal.NewFromInt(5500), decimal.NewFromInt(4500))

	service.On("CreatePayment", mock.Anything, mock.MatchedBy(func(r *domain.CreatePaymentRequest) bool {
		return r.LoanID == loanID && r.Amount != nil && r.Amount.Equal(decimal.NewFromInt(10000)) &&
			r.PaymentDate.String() == "2024-02-01"
	})).Return(payment, nil)

	rec := do(t, newTestRouter(service), http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"loan_id":      loanID,
		"amount":       "10000",
		"payment_date": "2024-02-01",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var got domain.Payment
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, payment.ID, got.ID)
	assert.Equal(t, domain.PaymentTypeMixed, got.PaymentType)
	service.AssertExpectations(t)
}

func TestCreatePayment_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"missing date", map[string]interface{}{"loan_id": uuid.New(), "amount": "10"}, http.StatusUnprocessableEntity},
		{"missing loan", map[string]interface{}{"amount": "10", "payment_date": "2024-02-01"}, http.StatusUnprocessableEntity},
		{"zero amount", map[string]interface{}{"loan_id": uuid.New(), "amount": "0", "payment_date": "2024-02-01"}, http.StatusUnprocessableEntity},
		{"negative principal", map[string]interface{}{"loan_id": uuid.New(), "principal_amount": "-5", "payment_date": "2024-02-01"}, http.StatusUnprocessableEntity},
		{"bad date", map[string]interface{}{"loan_id": uuid.New(), "amount": "10", "payment_date": "01/02/2024"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockService{}

			rec := do(t, newTestRouter(service), http.MethodPost, "/api/v1/payments", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, decodeEnvelope(t, rec).Success)
			service.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
		})
	}
}

func TestErrorStatusMapping(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", customError.WrapLoanNotFound(id.String()), http.StatusNotFound, customError.ErrCodeLoanNotFound},
		{"wrong loan type", customError.WrapInvalidOperation("applyPayment", "bullet"), http.StatusBadRequest, customError.ErrCodeInvalidOperation},
		{"inactive", customError.WrapLoanNotActive(id.String(), "paid_off"), http.StatusConflict, customError.ErrCodeLoanNotActive},
		{"bad amount", customError.WrapInvalidPaymentAmount("payment must not be zero"), http.StatusUnprocessableEntity, customError.ErrCodeInvalidPaymentAmount},
		{"database", customError.WrapDatabaseError(errors.New("connection reset")), http.StatusInternalServerError, customError.ErrCodeDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockService{}
			service.On("GetLoan", mock.Anything, id).Return(nil, tt.err)

			rec := do(t, newTestRouter(service), http.MethodGet, "/api/v1/loans/"+id.String(), nil)

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.code, env.Code)
			assert.NotContains(t, env.Message, "connection reset")
		})
	}
}

func TestGetLoan_InvalidID(t *testing.T) {
	service := &mockService{}

	rec := do(t, newTestRouter(service), http.MethodGet, "/api/v1/loans/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "GetLoan", mock.Anything, mock.Anything)
}

func TestGetAccruedInterest_AsOf(t *testing.T) {
	service := &mockService{}
	id := uuid.New()
	asOf := date.MustParse("2024-03-01")
	service.On("GetAccruedInterest", mock.Anything, id, asOf).Return(&domain.LoanAccrual{
		LoanID:          id,
		LoanType:        domain.LoanTypeBullet,
		AsOf:            asOf,
		AccruedInterest: decimal.NewFromInt(150000),
	}, nil)

	rec := do(t, newTestRouter(service), http.MethodGet, "/api/v1/loans/"+id.String()+"/accrued-interest?as_of=2024-03-01", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"as_of":"2024-03-01"`)
	service.AssertExpectations(t)

	rec = do(t, newTestRouter(service), http.MethodGet, "/api/v1/loans/"+id.String()+"/accrued-interest?as_of=March", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, customError.ErrCodeInvalidDate, decodeEnvelope(t, rec).Code)
}

func TestGetUpcomingPayments_Window(t *testing.T) {
	service := &mockService{}
	asOf := date.MustParse("2024-02-27")
	service.On("GetUpcomingPayments", mock.Anything, asOf, 3).Return([]*domain.UpcomingPayment{}, nil)
	service.On("GetUpcomingPayments", mock.Anything, asOf, defaultUpcomingWindowDays).Return([]*domain.UpcomingPayment{}, nil)

	router := newTestRouter(service)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/upcoming-payments?as_of=2024-02-27&within_days=3", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/upcoming-payments?as_of=2024-02-27", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/v1/upcoming-payments?within_days=soon", nil).Code)

	service.AssertExpectations(t)
}

func TestUpdatePayment_MovesLoan(t *testing.T) {
	service := &mockService{}
	id, target := uuid.New(), uuid.New()
	service.On("UpdatePayment", mock.Anything, id, mock.MatchedBy(func(r *domain.UpdatePaymentRequest) bool {
		return r.LoanID != nil && *r.LoanID == target && r.PrincipalAmount == nil
	})).Return(&domain.Payment{ID: id, LoanID: target}, nil)

	rec := do(t, newTestRouter(service), http.MethodPut, "/api/v1/payments/"+id.String(), map[string]interface{}{
		"loan_id": target,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestDeletePayment_NoContent(t *testing.T) {
	service := &mockService{}
	id := uuid.New()
	service.On("DeletePayment", mock.Anything, id).Return(nil)

	rec := do(t, newTestRouter(service), http.MethodDelete, "/api/v1/payments/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCreateLoan_ValidatesRate(t *testing.T) {
	service := &mockService{}

	rec := do(t, newTestRouter(service), http.MethodPost, "/api/v1/loans", map[string]interface{}{
		"borrower_id":      uuid.New(),
		"loan_type":        "installment",
		"principal_amount": "1000",
		"interest_rate":    "150",
		"start_date":       "2024-01-01",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "interest_rate failed decimal_lte=100")
}

func TestUpdateFixedIncomeStatus(t *testing.T) {
	service := &mockService{}
	id := uuid.New()
	service.On("UpdateFixedIncomeStatus", mock.Anything, id, domain.FixedIncomeStatusTerminated).
		Return(&domain.FixedIncome{ID: id, Status: domain.FixedIncomeStatusTerminated}, nil)

	router := newTestRouter(service)
	rec := do(t, router, http.MethodPatch, "/api/v1/fixed-incomes/"+id.String()+"/status", map[string]string{"status": "terminated"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPatch, "/api/v1/fixed-incomes/"+id.String()+"/status", map[string]string{"status": "sold"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	service.AssertNumberOfCalls(t, "UpdateFixedIncomeStatus", 1)
}

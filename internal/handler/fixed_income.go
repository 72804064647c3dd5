package handler

import (
	"net/http"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/response"
)

func (h *LendingHandler) CreateFixedIncome(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateFixedIncomeRequest
	if !h.decode(w, r, &request) {
		return
	}

	fi, err := h.service.CreateFixedIncome(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, fi)
}

func (h *LendingHandler) GetFixedIncome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	fi, err := h.service.GetFixedIncome(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, fi)
}

func (h *LendingHandler) ListFixedIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.service.ListFixedIncomes(r.Context(), domain.FixedIncomeStatus(r.URL.Query().Get("status")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, incomes)
}

func (h *LendingHandler) UpdateFixedIncomeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request domain.UpdateFixedIncomeStatusRequest
	if !h.decode(w, r, &request) {
		return
	}

	fi, err := h.service.UpdateFixedIncomeStatus(r.Context(), id, request.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, fi)
}

func (h *LendingHandler) GetNextIncomeDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	due, err := h.service.GetNextIncomeDate(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, due)
}

func (h *LendingHandler) ListIncomePayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payments, err := h.service.ListIncomePayments(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, payments)
}

func (h *LendingHandler) CreateIncomePayment(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateIncomePaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	payment, err := h.service.CreateIncomePayment(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, payment)
}

func (h *LendingHandler) UpdateIncomePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request domain.UpdateIncomePaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	payment, err := h.service.UpdateIncomePayment(r.Context(), id, &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, payment)
}

func (h *LendingHandler) DeleteIncomePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteIncomePayment(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w)
}

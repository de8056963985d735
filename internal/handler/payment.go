package handler

import (
	"net/http"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// ByOrder lists the payments of /api/utilisateurs/{id}.
func (h *PaymentHandler) ByOrder(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ByOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.paymentService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payment model.Payment
	err := decodeJSON(w, r, &payment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.paymentService.Create(r.Context(), &payment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payment model.Payment
	err := decodeJSON(w, r, &payment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.paymentService.Update(r.Context(), r.PathValue("id"), &payment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.paymentService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

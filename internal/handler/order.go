package handler

import (
	"net/http"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// ByUser lists the orders of /api/utilisateurs/{id}.
func (h *OrderHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ByUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ByDeal lists the orders placed on /api/deals/{id}.
func (h *OrderHandler) ByDeal(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ByDeal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order model.Order
	err := decodeJSON(w, r, &order)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.orderService.Create(r.Context(), &order)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var order model.Order
	err := decodeJSON(w, r, &order)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.orderService.Update(r.Context(), r.PathValue("id"), &order)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.orderService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

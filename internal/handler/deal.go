package handler

import (
	"net/http"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/service"
)

type DealHandler struct {
	dealService *service.DealService
}

func NewDealHandler(dealService *service.DealService) *DealHandler {
	return &DealHandler{
		dealService: dealService,
	}
}

// List supports the ?statut=, ?createur= and ?categorie= filters.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	deals, err := h.dealService.List(r.Context(), repository.DealFilter{
		Status:     query.Get("statut"),
		CreatorID:  query.Get("createur"),
		CategoryID: query.Get("categorie"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	deal, err := h.dealService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var deal model.Deal
	err := decodeJSON(w, r, &deal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.dealService.Create(r.Context(), &deal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var deal model.Deal
	err := decodeJSON(w, r, &deal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.dealService.Update(r.Context(), r.PathValue("id"), &deal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.dealService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

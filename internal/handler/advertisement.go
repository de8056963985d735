package handler

import (
	"net/http"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/service"
)

type AdvertisementHandler struct {
	adService *service.AdvertisementService
}

func NewAdvertisementHandler(adService *service.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{
		adService: adService,
	}
}

func (h *AdvertisementHandler) List(w http.ResponseWriter, r *http.Request) {
	ads, err := h.adService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

// Active lists advertisements currently running.
func (h *AdvertisementHandler) Active(w http.ResponseWriter, r *http.Request) {
	ads, err := h.adService.Active(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

func (h *AdvertisementHandler) Get(w http.ResponseWriter, r *http.Request) {
	ad, err := h.adService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func (h *AdvertisementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var ad model.Advertisement
	err := decodeJSON(w, r, &ad)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.adService.Create(r.Context(), &ad)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdvertisementHandler) Update(w http.ResponseWriter, r *http.Request) {
	var ad model.Advertisement
	err := decodeJSON(w, r, &ad)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.adService.Update(r.Context(), r.PathValue("id"), &ad)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AdvertisementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.adService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/service"
)

type AddressHandler struct {
	addressService *service.AddressService
}

func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

// ByUser lists the addresses of /api/utilisateurs/{id}.
func (h *AddressHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addressService.ByUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, err := h.addressService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var address model.Address
	err := decodeJSON(w, r, &address)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.addressService.Create(r.Context(), &address)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var address model.Address
	err := decodeJSON(w, r, &address)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.addressService.Update(r.Context(), r.PathValue("id"), &address)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.addressService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

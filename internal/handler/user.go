package handler

import (
	"net/http"

	"github.com/dealmarket/bff/internal/ctxkeys"
	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// createUserRequest is a user plus the initial password of its identity account.
type createUserRequest struct {
	model.User
	Password string `json:"motDePasse"`
}

type enabledRequest struct {
	Enabled *bool `json:"actif" validate:"required"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

type passwordRequest struct {
	Password string `json:"motDePasse" validate:"required"`
}

type avatarURLResponse struct {
	URL string `json:"url"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Me returns the local user behind the bearer token.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.BySubject(r.Context(), ctxkeys.Subject(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.userService.Create(r.Context(), &req.User, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update serves both PUT and PATCH; absent fields are left untouched.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.UserPatch
	err := decodeJSON(w, r, &patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.userService.Update(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.userService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetAvatar replaces the profile picture and returns it with its upload URL.
func (h *UserHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var avatar model.Image
	err := decodeJSON(w, r, &avatar)
	if err != nil {
		writeError(w, r, err)
		return
	}

	image, err := h.userService.SetAvatar(r.Context(), r.PathValue("id"), &avatar)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, image)
}

func (h *UserHandler) AvatarURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.userService.AvatarURL(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarURLResponse{URL: url})
}

func (h *UserHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	var req enabledRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.userService.SetEnabled(r.Context(), r.PathValue("id"), *req.Enabled)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.userService.AssignRole(r.Context(), r.PathValue("id"), req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.userService.ResetPassword(r.Context(), r.PathValue("id"), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ByDeal lists the comments of /api/deals/{id}, newest first.
func (h *CommentHandler) ByDeal(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ByDeal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.commentService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var comment model.Comment
	err := decodeJSON(w, r, &comment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.commentService.Create(r.Context(), &comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var comment model.Comment
	err := decodeJSON(w, r, &comment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.commentService.Update(r.Context(), r.PathValue("id"), &comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.commentService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

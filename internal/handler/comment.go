package handler

import (
	"net/http"

	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/logger"
	"github.com/postline-dev/postline/internal/validation"
)

// AddComment attaches a comment to an existing post. A missing post is
// a 404, but a comment that fails validation is dropped without any
// error page: the visitor lands back on the detail page either way.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	id, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := validation.ParseCommentForm(r.Form)
	if err := form.Check(); err != nil {
		redirectToDetail(w, r, post.Id)
		return
	}

	if _, err := h.comments.Create(post.Id, *user, form.Text); err != nil {
		logger.Log.Error("creating comment", "post_id", post.Id, "error", err)
		internal_errors.WriteStatusCode(w, err)
		return
	}

	redirectToDetail(w, r, post.Id)
}

package handler

import (
	"encoding/json"
	"net/http"

	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/validation"
)

// CreateGroup is the admin endpoint for adding a community. Groups are
// curated, not user-created, so this stays a small JSON API instead of
// a public form.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var form validation.GroupForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := form.Check(); err != nil {
		if ve := internal_errors.AsValidation(err); ve != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Fields})
			return
		}
		internal_errors.WriteStatusCode(w, err)
		return
	}

	id, err := h.groups.Create(form.Title, form.Slug, form.Description)
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "slug": form.Slug})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

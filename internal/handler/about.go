package handler

import "net/http"

func (h *Handler) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "about_author.html", nil)
}

func (h *Handler) AboutTech(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "about_tech.html", nil)
}

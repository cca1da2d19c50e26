package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/postline-dev/postline/internal/domain"
	"github.com/postline-dev/postline/internal/logger"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonData
}

type CommonData struct {
	User  *domain.User // nil for anonymous visitors
	Error string
}

// postView decorates a post with its text rendered to safe HTML.
type postView struct {
	domain.Post
	Rendered template.HTML
}

type commentView struct {
	domain.Comment
	Rendered template.HTML
}

func (h *Handler) postViews(posts []domain.Post) []postView {
	views := make([]postView, len(posts))
	for i, p := range posts {
		views[i] = postView{Post: p, Rendered: h.text.Render(p.Text)}
	}
	return views
}

func (h *Handler) commentViews(comments []domain.Comment) []commentView {
	views := make([]commentView, len(comments))
	for i, c := range comments {
		views[i] = commentView{Comment: c, Rendered: h.text.Render(c.Text)}
	}
	return views
}

func (h *Handler) renderToBuffer(name string, data any, common CommonData) ([]byte, error) {
	tmpl, ok := h.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, TemplateData{Data: data, Common: common}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	common := CommonData{User: h.currentUser(r), Error: errMsg}
	payload, err := h.renderToBuffer(name, data, common)
	if err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}
	writeHTML(w, payload)
}

func writeHTML(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(payload)
}

package handler

import (
	"html/template"
	"net/http"
	"time"

	"github.com/postline-dev/postline/internal/cache"
	"github.com/postline-dev/postline/internal/domain"
	"github.com/postline-dev/postline/internal/markdown"
	mw "github.com/postline-dev/postline/internal/middleware"
	"github.com/postline-dev/postline/internal/service"
)

type Handler struct {
	posts    service.PostService
	groups   service.GroupService
	comments service.CommentService
	auth     service.AuthService

	templates     map[string]*template.Template
	pageCache     cache.Cache
	text          *markdown.TextProcessor
	jwtTTL        time.Duration
	secureCookies bool
}

func New(
	posts service.PostService,
	groups service.GroupService,
	comments service.CommentService,
	auth service.AuthService,
	templates map[string]*template.Template,
	pageCache cache.Cache,
	text *markdown.TextProcessor,
	jwtTTL time.Duration,
	secureCookies bool,
) *Handler {
	return &Handler{
		posts:         posts,
		groups:        groups,
		comments:      comments,
		auth:          auth,
		templates:     templates,
		pageCache:     pageCache,
		text:          text,
		jwtTTL:        jwtTTL,
		secureCookies: secureCookies,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) currentUser(r *http.Request) *domain.User {
	return mw.GetUserFromContext(r)
}

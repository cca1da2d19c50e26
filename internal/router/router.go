package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/postline-dev/postline/internal/middleware"
	"github.com/postline-dev/postline/internal/middleware/metrics"
	"github.com/postline-dev/postline/internal/setup"
)

// CSP for server-rendered pages: same-origin only.
const pagesCSP = "default-src 'self'; img-src 'self' data:; frame-ancestors 'none'"

// New creates and configures the router with all the routes. Listing
// and detail pages stay readable for anonymous visitors; writes
// require a session and group creation is admin only.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, pagesCSP))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	// Public pages. OptionalAuth only fills the navbar user.
	r.Group(func(r chi.Router) {
		r.Use(authMw.OptionalAuth())

		r.Get("/", h.Index)
		r.Get("/group/{slug}/", h.GroupPosts)
		r.Get("/profile/{username}/", h.Profile)
		r.Get("/posts/{id}/", h.PostDetail)

		r.Get("/about/author/", h.AboutAuthor)
		r.Get("/about/tech/", h.AboutTech)

		r.Get("/auth/signup/", h.SignupForm)
		r.Post("/auth/signup/", h.Signup)
		r.Get("/auth/login/", h.LoginForm)
		r.Post("/auth/login/", h.Login)
	})

	// Routes requiring a signed-in user.
	r.Group(func(r chi.Router) {
		r.Use(authMw.NeedAuth())

		r.Get("/create/", h.CreatePostForm)
		r.Post("/create/", h.CreatePost)
		r.Get("/posts/{id}/edit/", h.EditPostForm)
		r.Post("/posts/{id}/edit/", h.EditPost)
		r.Post("/posts/{id}/comment/", h.AddComment)
		r.Post("/auth/logout/", h.Logout)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(authMw.AdminOnly())
		r.Post("/admin/groups/", h.CreateGroup)
	})

	// Uploaded images and static assets. CORS is open so media can be
	// embedded from other origins.
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "HEAD"},
		}))
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(deps.Media.Root()))))
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.Public.StaticPath))))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	return r
}

package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/postline-dev/postline/internal/domain"
	"github.com/postline-dev/postline/internal/jwt"
)

const accessCookieName = "accessToken"
const loginPath = "/auth/login/"

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

// Auth holds dependencies for the authentication middleware.
type Auth struct {
	jwtService jwt.Service
}

func NewAuth(jwtService jwt.Service) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth requires a valid session. Unauthenticated requests are
// redirected to the login page with the intended destination preserved
// in the next parameter.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := a.extractUser(r)
			if user == nil {
				redirectToLogin(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly requires a valid session with the admin flag.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := a.extractUser(r)
			if user == nil {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}
			if !user.Admin {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the user context when a valid token is present
// but never blocks the request.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := a.extractUser(r); user != nil {
				ctx := context.WithValue(r.Context(), userClaimsKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) extractUser(r *http.Request) *domain.User {
	cookie, err := r.Cookie(accessCookieName)
	if err != nil {
		return nil
	}
	user, err := a.jwtService.DecodeUser(cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusFound)
}

// GetUserFromContext retrieves the authenticated user, or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// WithUser is a test helper-friendly way to place a user into a request
// context without going through the token path.
func WithUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userClaimsKey, user))
}

package handler

import (
	"net/http"

	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/validation"
)

const accessCookieName = "accessToken"

type authFormData struct {
	Form   any
	Errors map[string]string
	Next   string
}

func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signup.html", authFormData{Next: r.URL.Query().Get("next")})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := validation.ParseSignupForm(r.Form)
	next := r.Form.Get("next")
	if err := form.Check(); err != nil {
		if ve := internal_errors.AsValidation(err); ve != nil {
			h.renderTemplate(w, r, "signup.html", authFormData{Form: form, Errors: ve.Fields, Next: next})
			return
		}
		internal_errors.WriteStatusCode(w, err)
		return
	}

	token, err := h.auth.SignUp(form.Username, form.Email, form.Password)
	if err != nil {
		if internal_errors.StatusCode(err) == http.StatusConflict {
			h.renderTemplateWithError(w, r, "signup.html",
				authFormData{Form: form, Next: next}, "That username or email is already taken")
			return
		}
		internal_errors.WriteStatusCode(w, err)
		return
	}

	h.setAccessCookie(w, token)
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", authFormData{Next: r.URL.Query().Get("next")})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := validation.ParseLoginForm(r.Form)
	next := r.Form.Get("next")
	if err := form.Check(); err != nil {
		if ve := internal_errors.AsValidation(err); ve != nil {
			h.renderTemplate(w, r, "login.html", authFormData{Form: form, Errors: ve.Fields, Next: next})
			return
		}
		internal_errors.WriteStatusCode(w, err)
		return
	}

	token, err := h.auth.Login(form.Username, form.Password)
	if err != nil {
		if internal_errors.StatusCode(err) == http.StatusUnauthorized {
			h.renderTemplateWithError(w, r, "login.html",
				authFormData{Form: form, Next: next}, "Invalid username or password")
			return
		}
		internal_errors.WriteStatusCode(w, err)
		return
	}

	h.setAccessCookie(w, token)
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

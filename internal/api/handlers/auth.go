package handlers

import (
	"errors"
	"net/http"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/service"
	"github.com/arya/athlete-insights/internal/session"
	"github.com/arya/athlete-insights/internal/validate"
	"github.com/arya/athlete-insights/internal/view"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
	renderer    *view.Renderer
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Manager, renderer *view.Renderer) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, renderer: renderer}
}

func signupRules() validate.Chain {
	return validate.Chain{
		validate.Required("fullName", "Full name is required"),
		validate.Email("email", "Enter a valid email"),
		validate.MinLength("password", 8, "Password must be at least 8 characters"),
		validate.MatchesField("confirmPassword", "password", "Passwords do not match"),
		validate.OneOf("role", domain.Roles(), "Role is required"),
		validate.Required("sport", "Sport is required"),
		validate.Equals("terms", "on", "You must accept the terms"),
	}
}

func loginRules() validate.Chain {
	return validate.Chain{
		validate.Email("email", "Enter a valid email"),
		validate.Required("password", "Password is required"),
	}
}

type formPage struct {
	Errors []validate.FieldError
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "signup.html", formPage{
			Errors: []validate.FieldError{{Field: "form", Message: "Invalid form submission"}},
		})
		return
	}

	if errs := signupRules().Validate(r.PostForm); len(errs) > 0 {
		h.renderer.Render(w, http.StatusBadRequest, "signup.html", formPage{Errors: errs})
		return
	}

	_, err := h.authService.Signup(r.Context(), service.SignupInput{
		FullName: r.PostForm.Get("fullName"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
		Role:     domain.Role(r.PostForm.Get("role")),
		Sport:    r.PostForm.Get("sport"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			h.renderer.Render(w, http.StatusBadRequest, "signup.html", formPage{
				Errors: []validate.FieldError{{Field: "email", Message: "Email already registered"}},
			})
			return
		}
		h.renderer.RenderError(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	// The original renders the login view directly here, no redirect.
	h.renderer.Render(w, http.StatusOK, "login.html", formPage{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "login.html", formPage{
			Errors: []validate.FieldError{{Field: "form", Message: "Invalid form submission"}},
		})
		return
	}

	if errs := loginRules().Validate(r.PostForm); len(errs) > 0 {
		h.renderer.Render(w, http.StatusBadRequest, "login.html", formPage{Errors: errs})
		return
	}

	user, err := h.authService.Login(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.renderer.Render(w, http.StatusBadRequest, "login.html", formPage{
				Errors: []validate.FieldError{{Field: "email", Message: "Invalid email or password"}},
			})
			return
		}
		h.renderer.RenderError(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	if err := h.sessions.Start(r.Context(), w, user); err != nil {
		h.renderer.RenderError(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	http.Redirect(w, r, "/users/profile", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), w, r); err != nil {
		http.Error(w, "Error logging out", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users/login", http.StatusFound)
}

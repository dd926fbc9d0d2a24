package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/forms"
	"github.com/yukikurage/qa-forum/internal/middleware"
	"github.com/yukikurage/qa-forum/internal/services"
)

const (
	msgUsernameTaken      = "A user with that username already exists."
	msgInvalidCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

// AuthHandler coordinates registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterPage shows the sign up form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.renderRegister(c, forms.RegisterForm{}, forms.FieldErrors{})
}

// Register creates an account and logs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}

	errs := form.Validate()
	if errs.Any() {
		h.renderRegister(c, form, errs)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password1,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			errs.Add("username", msgUsernameTaken)
			h.renderRegister(c, form, errs)
			return
		}
		apperrors.InternalError(c, err)
		return
	}

	if err := middleware.Login(c, user); err != nil {
		apperrors.InternalError(c, err)
		return
	}
	redirectAfterPost(c, "/")
}

func (h *AuthHandler) renderRegister(c *gin.Context, form forms.RegisterForm, errs forms.FieldErrors) {
	form.Password1, form.Password2 = "", ""
	render(c, http.StatusOK, "register.html", gin.H{
		"Title":  "Sign up",
		"Form":   form,
		"Errors": errs,
	})
}

// LoginPage shows the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.renderLogin(c, forms.LoginForm{}, forms.FieldErrors{})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}

	errs := form.Validate()
	if errs.Any() {
		h.renderLogin(c, form, errs)
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			errs.Add(forms.NonFieldErrors, msgInvalidCredentials)
			h.renderLogin(c, form, errs)
			return
		}
		apperrors.InternalError(c, err)
		return
	}

	if err := middleware.Login(c, user); err != nil {
		apperrors.InternalError(c, err)
		return
	}
	redirectAfterPost(c, "/")
}

func (h *AuthHandler) renderLogin(c *gin.Context, form forms.LoginForm, errs forms.FieldErrors) {
	form.Password = ""
	render(c, http.StatusOK, "login.html", gin.H{
		"Title":  "Log in",
		"Form":   form,
		"Errors": errs,
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		apperrors.InternalError(c, err)
		return
	}
	redirectAfterPost(c, "/")
}

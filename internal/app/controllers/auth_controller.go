package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/session"
	"github.com/campusgate/student-portal/internal/app/stores"
	"github.com/campusgate/student-portal/internal/middleware"
)

// AuthController handles login, sign-up and logout.
type AuthController struct {
	registry   *session.Registry
	cookieName string
	logger     zerolog.Logger
}

// NewAuthController creates a new auth controller.
func NewAuthController(registry *session.Registry, cookieName string, logger zerolog.Logger) *AuthController {
	return &AuthController{
		registry:   registry,
		cookieName: cookieName,
		logger:     logger.With().Str("controller", "auth").Logger(),
	}
}

// ShowLogin renders the login screen; an already-authenticated session goes
// straight to the dashboard.
func (ctl *AuthController) ShowLogin(c *gin.Context) {
	if s := middleware.SessionFrom(c); s != nil && s.Stores.Auth.Authenticated() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", pageData(c, "login", nil))
}

// Login processes the login form. A fresh session (with its own backend
// cookie jar) is issued per attempt and dropped again on failure.
func (ctl *AuthController) Login(c *gin.Context) {
	var req stores.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", pageData(c, "login", gin.H{
			"Error": "email and password are required",
			"Email": req.Email,
		}))
		return
	}

	s := ctl.registry.Issue()
	if err := s.Stores.Auth.Login(c.Request.Context(), req); err != nil {
		ctl.registry.Drop(s.ID)
		c.HTML(http.StatusUnauthorized, "login.html", pageData(c, "login", gin.H{
			"Error": messageOf(err, "login failed, please try again"),
			"Email": req.Email,
		}))
		return
	}

	ctl.setSessionCookie(c, s.ID)
	ctl.logger.Info().Str("sessionId", s.ID).Msg("Student logged in")
	c.Redirect(http.StatusFound, "/dashboard")
}

// ShowSignUp renders the registration screen.
func (ctl *AuthController) ShowSignUp(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", pageData(c, "signup", nil))
}

// SignUp processes the registration form and signs the new student in.
func (ctl *AuthController) SignUp(c *gin.Context) {
	var req stores.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", pageData(c, "signup", gin.H{
			"Error": "all fields are required (password at least 8 characters)",
			"Form":  req,
		}))
		return
	}

	s := ctl.registry.Issue()
	if err := s.Stores.Auth.SignUp(c.Request.Context(), req); err != nil {
		ctl.registry.Drop(s.ID)
		c.HTML(http.StatusBadRequest, "signup.html", pageData(c, "signup", gin.H{
			"Error": messageOf(err, "sign up failed, please try again"),
			"Form":  req,
		}))
		return
	}

	ctl.setSessionCookie(c, s.ID)
	ctl.logger.Info().Str("sessionId", s.ID).Msg("Student signed up")
	c.Redirect(http.StatusFound, "/profile")
}

// Logout ends both the backend session and the portal session. The portal
// session is dropped even when the backend call fails.
func (ctl *AuthController) Logout(c *gin.Context) {
	if s := middleware.SessionFrom(c); s != nil {
		_ = s.Stores.Auth.Logout(c.Request.Context())
		ctl.registry.Drop(s.ID)
	}
	c.SetCookie(ctl.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

func (ctl *AuthController) setSessionCookie(c *gin.Context, id string) {
	// Secure flag rides on the request scheme so local development over
	// plain HTTP keeps working.
	secure := c.Request.TLS != nil
	c.SetCookie(ctl.cookieName, id, 0, "/", "", secure, true)
}

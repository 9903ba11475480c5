package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/api/metrics"
	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
	"github.com/nourtech/storefront/internal/infrastructure/session"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
	log          zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie, log: log}
}

// Signup creates a customer account and logs it in.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	issued, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", outcome(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()

	c.SetCookie(session.NewCookie(issued.Token, h.authService.SessionTTL(), h.secureCookie))
	return c.JSON(http.StatusCreated, toUserResponse(issued.User))
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	issued, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", outcome(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	c.SetCookie(session.NewCookie(issued.Token, h.authService.SessionTTL(), h.secureCookie))
	return c.JSON(http.StatusOK, toUserResponse(issued.User))
}

// Logout clears the session cookie. It succeeds with or without a session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(session.ExpiredCookie(h.secureCookie))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Me reports the account behind the current session, if any.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return c.JSON(http.StatusOK, meResponse{Authenticated: false})
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), p)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			h.log.Warn().Err(err).Str("user_id", p.UserID).Msg("resolving current user failed")
		}
		return c.JSON(http.StatusOK, meResponse{Authenticated: false})
	}

	resp := toUserResponse(user)
	return c.JSON(http.StatusOK, meResponse{Authenticated: true, User: &resp})
}

// outcome classifies an auth failure for the attempts metric.
func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
)

// AuthHandler serves the application's auth contract.
type AuthHandler struct {
	bridge ports.BridgeService
}

func NewAuthHandler(bridge ports.BridgeService) *AuthHandler {
	return &AuthHandler{bridge: bridge}
}

type loginRequest struct {
	// Identifier is a username or an email.
	Identifier string `json:"identifier" validate:"required,min=3,max=128" example:"alice"`
	Password   string `json:"password"   validate:"required,max=128"       example:"password1"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"                   example:"alice@example.com"`
	Username string `json:"username" validate:"required,min=3,max=64,username"  example:"alice"`
	Password string `json:"password" validate:"required,min=8,max=128"          example:"password1"`
}

type emailAvailabilityRequest struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}

type usernameAvailabilityRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64" example:"alice"`
}

type emailAvailabilityResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
}

type usernameAvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

// Login signs in with a username or an email.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.AuthResponse
// @Failure      400   {object}  domain.AuthError
// @Failure      401   {object}  domain.AuthError
// @Failure      404   {object}  domain.AuthError
// @Failure      500   {object}  domain.AuthError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ex := exchange(c)
	resp, err := h.bridge.Login(c.Request().Context(), ex, ports.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	relay(c, ex)
	if err != nil {
		return err
	}
	return respond(c, resp)
}

// Register creates an account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  domain.AuthResponse
// @Failure      400   {object}  domain.AuthError
// @Failure      422   {object}  domain.AuthError
// @Failure      500   {object}  domain.AuthError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ex := exchange(c)
	resp, err := h.bridge.Register(c.Request().Context(), ex, ports.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	relay(c, ex)
	if err != nil {
		return err
	}
	return respond(c, resp)
}

// Logout revokes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Failure      500  {object}  domain.AuthError
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ex := exchange(c)
	err := h.bridge.Logout(c.Request().Context(), ex)
	relay(c, ex)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoutResponse{Success: true})
}

// Session returns the current session, or null when there is none.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.AuthResponse
// @Failure      500  {object}  domain.AuthError
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	ex := exchange(c)
	resp, err := h.bridge.Session(c.Request().Context(), ex)
	relay(c, ex)
	if err != nil {
		return err
	}
	return respond(c, resp)
}

// EmailAvailability reports whether an email is free.
//
// @Summary      Email availability
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailAvailabilityRequest  true  "Email to check"
// @Success      200   {object}  emailAvailabilityResponse
// @Failure      400   {object}  domain.AuthError
// @Router       /auth/email-availability [post]
func (h *AuthHandler) EmailAvailability(c echo.Context) error {
	var req emailAvailabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ok, err := h.bridge.EmailAvailable(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emailAvailabilityResponse{Email: req.Email, Available: ok})
}

// UsernameAvailability reports whether a username is free.
//
// @Summary      Username availability
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      usernameAvailabilityRequest  true  "Username to check"
// @Success      200   {object}  usernameAvailabilityResponse
// @Failure      400   {object}  domain.AuthError
// @Router       /auth/username-availability [post]
func (h *AuthHandler) UsernameAvailability(c echo.Context) error {
	var req usernameAvailabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ok, err := h.bridge.UsernameAvailable(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usernameAvailabilityResponse{Username: req.Username, Available: ok})
}

// respond writes resp as the body; a nil response is written as null.
func respond(c echo.Context, resp *domain.AuthResponse) error {
	return c.JSON(http.StatusOK, resp)
}

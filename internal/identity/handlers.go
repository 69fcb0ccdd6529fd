package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/law-manager/lawauth/internal/api/metrics"
	"github.com/law-manager/lawauth/internal/core/domain"
)

type signUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Username string `json:"username" validate:"required,min=3,max=64,username"`
	// Role is accepted for wire compatibility; accounts always start with
	// the default role.
	Role string `json:"role"`
}

type signInEmailRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInUsernameRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// providerError is rendered as {"code", "message"} with its status.
type providerError struct {
	status  int
	code    string
	message string
}

func (e *providerError) Error() string { return e.code + ": " + e.message }

func reject(status int, code, message string) error {
	return &providerError{status: status, code: code, message: message}
}

var errInvalidEmailOrPassword = reject(http.StatusUnauthorized, "INVALID_EMAIL_OR_PASSWORD", "Invalid email or password")

func (p *Provider) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return reject(http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return reject(http.StatusBadRequest, "VALIDATION_ERROR", ve.Details)
		}
		return err
	}
	return nil
}

func (p *Provider) checkPassword(password string) error {
	switch n := len(password); {
	case n < p.cfg.MinPasswordLength:
		return reject(http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password too short")
	case n > p.cfg.MaxPasswordLength:
		return reject(http.StatusBadRequest, "PASSWORD_TOO_LONG", "Password too long")
	}
	return nil
}

func (p *Provider) signUpEmail(c echo.Context) error {
	var req signUpRequest
	if err := p.bind(c, &req); err != nil {
		return err
	}
	if err := p.checkPassword(req.Password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := p.now().Truncate(time.Millisecond)
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	beforeCreate(account)

	ctx := c.Request().Context()
	if err := p.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return reject(http.StatusUnprocessableEntity, "USER_ALREADY_EXISTS", "User already exists")
		}
		return err
	}
	p.afterCreate(ctx, account)

	resp := signUpResponse{User: toUserJSON(account)}
	if p.cfg.AutoSignIn {
		s, err := p.issueSession(ctx, c, account.ID)
		if err != nil {
			return err
		}
		metrics.SessionsIssuedTotal.WithLabelValues("sign_up").Inc()
		sj := toSessionJSON(s)
		resp.Token = &s.Token
		resp.Session = &sj
	}
	return c.JSON(http.StatusOK, resp)
}

func (p *Provider) signInEmail(c echo.Context) error {
	var req signInEmailRequest
	if err := p.bind(c, &req); err != nil {
		return err
	}

	account, err := p.accounts.FindByEmail(c.Request().Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return errInvalidEmailOrPassword
		}
		return err
	}
	return p.completeSignIn(c, account, req.Password, "email")
}

func (p *Provider) signInUsername(c echo.Context) error {
	var req signInUsernameRequest
	if err := p.bind(c, &req); err != nil {
		return err
	}

	account, err := p.accounts.FindByUsername(c.Request().Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return reject(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		}
		return err
	}
	if err := p.completeSignIn(c, account, req.Password, "username"); err != nil {
		if errors.Is(err, errInvalidEmailOrPassword) {
			return reject(http.StatusUnauthorized, "INVALID_USERNAME_OR_PASSWORD", "Invalid username or password")
		}
		return err
	}
	return nil
}

func (p *Provider) completeSignIn(c echo.Context, account *domain.Account, password, method string) error {
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return errInvalidEmailOrPassword
	}

	s, err := p.issueSession(c.Request().Context(), c, account.ID)
	if err != nil {
		return err
	}
	metrics.SessionsIssuedTotal.WithLabelValues(method).Inc()

	return c.JSON(http.StatusOK, signInResponse{
		Redirect: false,
		Token:    s.Token,
		User:     toUserJSON(account),
		Session:  toSessionJSON(s),
	})
}

func (p *Provider) signOut(c echo.Context) error {
	if token, err := p.readSessionCookie(c); err == nil {
		if err := p.sessions.Delete(c.Request().Context(), token); err != nil {
			return err
		}
	}
	p.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (p *Provider) getSession(c echo.Context) error {
	s, err := p.currentSession(c)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return err
	}

	account, err := p.accounts.FindByID(c.Request().Context(), s.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return err
	}

	return c.JSON(http.StatusOK, sessionEnvelope{
		User:    toUserJSON(account),
		Session: toSessionJSON(s),
	})
}

// handleError renders provider failures in the provider's native shape.
func (p *Provider) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var pe *providerError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &pe):
		_ = c.JSON(pe.status, errorJSON{Code: pe.code, Message: pe.message})
	case errors.As(err, &he):
		_ = c.JSON(he.Code, errorJSON{Code: strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_")), Message: fmt.Sprintf("%v", he.Message)})
	default:
		p.log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("identity provider error")
		_ = c.JSON(http.StatusInternalServerError, errorJSON{Code: "INTERNAL_SERVER_ERROR", Message: "internal server error"})
	}
}

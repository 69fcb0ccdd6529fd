package identity

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// sessionClaims is the payload of the signed session cookie.
type sessionClaims struct {
	SessionToken string `json:"sid"`
	jwt.RegisteredClaims
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (p *Provider) signSession(s *domain.ProviderSession) (string, error) {
	claims := sessionClaims{
		SessionToken: s.Token,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

func (p *Provider) parseSession(value string) (string, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (interface{}, error) {
		return p.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid session cookie")
	}
	if claims.SessionToken == "" {
		return "", errors.New("session cookie without token")
	}
	return claims.SessionToken, nil
}

func (p *Provider) setSessionCookie(c echo.Context, s *domain.ProviderSession) error {
	value, err := p.signSession(s)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     p.CookieName(),
		Value:    value,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   p.cfg.SecureCookies,
	})
	return nil
}

func (p *Provider) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     p.CookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   p.cfg.SecureCookies,
	})
}

func (p *Provider) readSessionCookie(c echo.Context) (string, error) {
	cookie, err := c.Cookie(p.CookieName())
	if err != nil || cookie.Value == "" {
		return "", errors.New("no session cookie")
	}
	return p.parseSession(cookie.Value)
}

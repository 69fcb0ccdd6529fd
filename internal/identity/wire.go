package identity

import (
	"time"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// Native response shapes of the provider. They are deliberately the
// provider's own (name, image, session id and token both present) and are
// reshaped by the bridge's normalizer.

type userJSON struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	EmailVerified bool      `json:"emailVerified"`
	Image         *string   `json:"image"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type sessionJSON struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
}

type sessionEnvelope struct {
	User    userJSON    `json:"user"`
	Session sessionJSON `json:"session"`
}

type signUpResponse struct {
	Token   *string      `json:"token"`
	User    userJSON     `json:"user"`
	Session *sessionJSON `json:"session,omitempty"`
}

type signInResponse struct {
	Redirect bool        `json:"redirect"`
	Token    string      `json:"token"`
	User     userJSON    `json:"user"`
	Session  sessionJSON `json:"session"`
}

type errorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toUserJSON(a *domain.Account) userJSON {
	return userJSON{
		ID:            a.ID,
		Email:         a.Email,
		Name:          a.Name,
		Username:      a.Username,
		EmailVerified: a.EmailVerified,
		Role:          string(a.Role),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toSessionJSON(s *domain.ProviderSession) sessionJSON {
	return sessionJSON{
		ID:        s.ID,
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
	}
}

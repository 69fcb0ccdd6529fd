package ports

import (
	"context"
	"net/http"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// Exchange carries the headers of the client request being bridged and
// collects the headers that must be replayed on the client response.
type Exchange struct {
	Inbound  http.Header
	Outbound http.Header
	// ClientIP is the caller's address, forwarded to the provider as
	// X-Forwarded-For when the client did not send one.
	ClientIP string
}

// NewExchange returns an Exchange reading from in with an empty outbound set.
func NewExchange(in http.Header) *Exchange {
	if in == nil {
		in = http.Header{}
	}
	return &Exchange{Inbound: in, Outbound: http.Header{}}
}

// LoginInput is a username-or-email login attempt.
type LoginInput struct {
	Identifier string
	Password   string
}

// RegisterInput carries a pre-validated registration request.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// BridgeService exposes the application's auth contract on top of the
// identity provider.
type BridgeService interface {
	Login(ctx context.Context, ex *Exchange, in LoginInput) (*domain.AuthResponse, error)
	Register(ctx context.Context, ex *Exchange, in RegisterInput) (*domain.AuthResponse, error)
	Logout(ctx context.Context, ex *Exchange) error
	// Session returns nil, nil when the caller has no valid session.
	Session(ctx context.Context, ex *Exchange) (*domain.AuthResponse, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

package domain

import "time"

// Role is one of the fixed firm role tags.
type Role string

const (
	RoleMaster    Role = "master"
	RoleAdmin     Role = "admin"
	RoleSale      Role = "sale"
	RoleLawyer    Role = "lawyer"
	RoleAssistant Role = "assistant"
)

// DefaultRole is the lowest-privilege tag, applied when a role is absent or unknown.
const DefaultRole = RoleAssistant

// Roles lists every role tag from highest to lowest privilege.
var Roles = []Role{RoleMaster, RoleAdmin, RoleSale, RoleLawyer, RoleAssistant}

// ParseRole returns the matching role tag, or DefaultRole when s is not one.
func ParseRole(s string) Role {
	for _, r := range Roles {
		if string(r) == s {
			return r
		}
	}
	return DefaultRole
}

// Valid reports whether r is one of the fixed role tags.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is the normalized user contract returned to clients.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	EmailVerified bool   `json:"emailVerified"`
	Role          Role   `json:"role"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// Session is the normalized session contract returned to clients.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// AuthResponse pairs a user with an optional session.
type AuthResponse struct {
	User    User     `json:"user"`
	Session *Session `json:"session,omitempty"`
}

// Account is the identity provider's own user row.
type Account struct {
	ID            string
	Email         string
	Username      string
	Name          string
	EmailVerified bool
	Role          Role
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProviderSession is a session issued by the identity provider.
type ProviderSession struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
	IPAddress string
	UserAgent string
}

// Expired reports whether the session is past its expiry at now.
func (s *ProviderSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// DirectoryEntry is the denormalized copy of a user kept for lookups.
type DirectoryEntry struct {
	ID            string
	Email         string
	Username      string
	Role          Role
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EntryFromAccount builds the directory mirror of a provider account.
func EntryFromAccount(a *Account) *DirectoryEntry {
	return &DirectoryEntry{
		ID:            a.ID,
		Email:         a.Email,
		Username:      a.Username,
		Role:          a.Role,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// Package normalize converts the identity provider's loosely shaped user and
// session payloads into the fixed domain contract.
//
// Every field has its own reader that returns a typed value or a
// *domain.NormalizeError; nothing panics on an unexpected shape.
package normalize

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// Raw is an undecoded JSON object as returned by the identity provider.
type Raw map[string]any

// ISOLayout is the canonical instant format: UTC with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z"

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Tokens are tried in this order when reading a session token.
var tokenFields = []string{"id", "sessionToken", "token"}

// User normalizes a provider user object.
func User(raw Raw) (domain.User, error) {
	id, ok := nonEmptyString(raw["id"])
	if !ok {
		return domain.User{}, &domain.NormalizeError{Kind: domain.ErrMissingField, Field: "user.id"}
	}
	email, ok := nonEmptyString(raw["email"])
	if !ok {
		return domain.User{}, &domain.NormalizeError{Kind: domain.ErrMissingField, Field: "user.email"}
	}
	username, ok := nonEmptyString(raw["username"])
	if !ok {
		username, ok = nonEmptyString(raw["name"])
	}
	if !ok {
		return domain.User{}, &domain.NormalizeError{Kind: domain.ErrMissingField, Field: "user.username"}
	}

	role, _ := raw["role"].(string)

	createdAt, err := dateField(raw, "createdAt", "created_at")
	if err != nil {
		return domain.User{}, err
	}
	updatedAt, err := dateField(raw, "updatedAt", "updated_at")
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		ID:            id,
		Email:         email,
		Username:      username,
		EmailVerified: Bool(first(raw, "emailVerified", "email_verified", "isEmailVerified")),
		Role:          domain.ParseRole(role),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// Session normalizes a provider session object.
func Session(raw Raw) (domain.Session, error) {
	var token string
	for _, field := range tokenFields {
		if v, ok := nonEmptyString(raw[field]); ok {
			token = v
			break
		}
	}
	if token == "" {
		return domain.Session{}, &domain.NormalizeError{Kind: domain.ErrMissingToken, Field: "session.token"}
	}

	expiresAt, err := dateField(raw, "expiresAt", "expires_at")
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// UserRaw turns a normalized user back into a provider-shaped object.
func UserRaw(u domain.User) Raw {
	return Raw{
		"id":            u.ID,
		"email":         u.Email,
		"username":      u.Username,
		"emailVerified": u.EmailVerified,
		"role":          string(u.Role),
		"createdAt":     u.CreatedAt,
		"updatedAt":     u.UpdatedAt,
	}
}

// Object returns v as a Raw when it is a JSON object.
func Object(v any) (Raw, bool) {
	switch m := v.(type) {
	case Raw:
		return m, m != nil
	case map[string]any:
		return Raw(m), m != nil
	default:
		return nil, false
	}
}

// Bool coerces booleans, numbers and "true"/"false"/numeric strings.
// Anything else is false.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case float32:
		return b != 0
	case int:
		return b != 0
	case int64:
		return b != 0
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case string:
		switch b {
		case "true":
			return true
		case "false":
			return false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
		return err == nil && f != 0
	default:
		return false
	}
}

// Instants outside four-digit years cannot round-trip through ISOLayout.
var (
	minInstant = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// Instant converts a date-like value to the canonical ISO string.
// Numbers are Unix epoch milliseconds. Years outside 0000-9999 are rejected.
func Instant(v any) (string, error) {
	t, err := parseInstant(v)
	if err != nil {
		return "", err
	}
	if t.Before(minInstant) || t.After(maxInstant) {
		return "", domain.ErrInvalidDate
	}
	return t.UTC().Format(ISOLayout), nil
}

func parseInstant(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, domain.ErrInvalidDate
		}
		return d, nil
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, domain.ErrInvalidDate
		}
		return *d, nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range stringLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, domain.ErrInvalidDate
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return time.Time{}, domain.ErrInvalidDate
		}
		return fromMillis(f)
	case float64:
		return fromMillis(d)
	case int64:
		return time.UnixMilli(d), nil
	case int:
		return time.UnixMilli(int64(d)), nil
	default:
		return time.Time{}, domain.ErrInvalidDate
	}
}

// maxMillis bounds epoch milliseconds to the range a JS Date accepts.
const maxMillis = 8.64e15

func fromMillis(f float64) (time.Time, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxMillis {
		return time.Time{}, domain.ErrInvalidDate
	}
	ms := int64(f)
	return time.UnixMilli(ms), nil
}

func dateField(raw Raw, key, fallbackKey string) (string, error) {
	v := first(raw, key, fallbackKey)
	s, err := Instant(v)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return "", &domain.NormalizeError{Kind: domain.ErrInvalidDate, Field: key, Value: v}
		}
		return "", err
	}
	return s, nil
}

// first returns the first non-nil value among keys.
func first(raw Raw, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

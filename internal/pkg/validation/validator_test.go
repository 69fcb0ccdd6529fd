package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/law-manager/lawauth/internal/core/domain"
)

type sample struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64,username"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func TestValidate_Accepts(t *testing.T) {
	v := New()
	if err := v.Validate(sample{Email: "a@x.com", Username: "alice_01", Password: "password1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	v := New()
	err := v.Validate(sample{Email: "nope", Username: "a!", Password: "short"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	for _, want := range []string{"email must be a valid email", "username must be at least 3", "password must be at least 8"} {
		if !strings.Contains(ve.Details, want) {
			t.Fatalf("details %q missing %q", ve.Details, want)
		}
	}
}

func TestValidate_UsernameCharset(t *testing.T) {
	v := New()
	err := v.Validate(sample{Email: "a@x.com", Username: "alice smith", Password: "password1"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || !strings.Contains(ve.Details, "may only contain") {
		t.Fatalf("expected username charset error, got %v", err)
	}
}

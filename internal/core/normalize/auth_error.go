package normalize

import (
	"strings"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// AuthError extracts a readable error from a provider failure payload.
// Accepted shapes: an object with error/message/details fields, a bare
// string, or a Go error. fallback is used when nothing usable is found.
func AuthError(payload any, fallback string) domain.AuthError {
	if source, ok := Object(payload); ok {
		message, hasMessage := optionalString(source["message"])
		errMsg, ok := optionalString(source["error"])
		if !ok {
			if hasMessage {
				errMsg = message
			} else {
				errMsg = fallback
			}
		}

		details, ok := optionalString(source["details"])
		if !ok && hasMessage && message != errMsg {
			details = message
		}
		return domain.AuthError{Error: errMsg, Details: details}
	}

	if s, ok := optionalString(payload); ok {
		return domain.AuthError{Error: s}
	}
	return domain.AuthError{Error: fallback}
}

func optionalString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) != "" {
			return s, true
		}
	case error:
		if s != nil && s.Error() != "" {
			return s.Error(), true
		}
	}
	return "", false
}

package users

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/zxclownhd/fishing-app/pkg/db"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 8

var (
	emailPattern       = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	displayNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._]{3,30}$`)
)

// NormalizeEmail trims and lowercases the address and checks its shape.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", fieldError("email", "Invalid email")
	}
	return email, nil
}

// NormalizeDisplayName trims the name and enforces 3-30 letters, digits, dots
// or underscores.
func NormalizeDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if !displayNamePattern.MatchString(name) {
		return "", fieldError("displayName", "Display name must be 3-30 chars: letters, numbers, dot, underscore")
	}
	return name, nil
}

// CheckPassword enforces the minimum password length.
func CheckPassword(field, password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fieldError(field, "Password must be at least 8 characters")
	}
	return nil
}

// ConflictFromUnique translates a storage uniqueness violation on users into
// a conflict naming the colliding field. It returns nil for any other error.
func ConflictFromUnique(err error) error {
	switch {
	case db.IsUniqueViolation(err, "users_email_key", "users.email"):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Email already taken").
			WithDetails(map[string]any{"field": "email"})
	case db.IsUniqueViolation(err, "users_display_name_key", "users.display_name"):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Display name already taken").
			WithDetails(map[string]any{"field": "displayName"})
	}
	return nil
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithDetails(map[string]any{"field": field})
}

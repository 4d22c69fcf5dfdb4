// Package validation implements the request field rules shared by the HTTP
// DTOs. Every check returns an AppError naming the offending field so the
// boundary can short-circuit with a 400-class envelope.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/asset-management/internal"
)

// Departments is the closed enumeration users may belong to.
var Departments = []string{
	"CLOUD PLATFORM",
	"DEV PLATFORM",
	"BUSINESS PLATFORM",
	"CUSTOMER PLATFORM",
}

const (
	nameMinLen = 3
	nameMaxLen = 15

	passwordMinLen = 8
	passwordMaxLen = 16
)

const specialCharacters = `!@#$%^&*()-_=+[]{}|;:',.<>?/`

var emailLocalPart = regexp.MustCompile(`^[A-Za-z0-9._%+-]+$`)

func Name(name string) *errors.AppError {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name is required", errors.CodeMissingField)
	}
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		return errors.NewFieldValidationError("name",
			fmt.Sprintf("must be between %d and %d characters", nameMinLen, nameMaxLen))
	}
	return nil
}

// Email checks the address against the permitted corporate domain. The
// domain must be given in lowercase; the caller lowercases the whole
// address before storing it.
func Email(email, allowedDomain string) *errors.AppError {
	if strings.TrimSpace(email) == "" {
		return errors.NewValidationError("email is required", errors.CodeMissingField)
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return errors.NewValidationError("email must be a valid "+allowedDomain+" address", errors.CodeInvalidEmail)
	}
	local, domain := email[:at], email[at+1:]
	if !emailLocalPart.MatchString(local) || domain != allowedDomain {
		return errors.NewValidationError("email must be a valid "+allowedDomain+" address", errors.CodeInvalidEmail)
	}
	return nil
}

func Password(password string) *errors.AppError {
	if password == "" {
		return errors.NewValidationError("password is required", errors.CodeMissingField)
	}
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return errors.NewValidationError(
			fmt.Sprintf("password must be between %d and %d characters", passwordMinLen, passwordMaxLen),
			errors.CodeInvalidPassword)
	}

	var upper, lower, special bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			upper = true
		case ch >= 'a' && ch <= 'z':
			lower = true
		case strings.ContainsRune(specialCharacters, ch):
			special = true
		}
	}
	if !upper || !lower || !special {
		return errors.NewValidationError(
			"password must contain an uppercase letter, a lowercase letter and a special character",
			errors.CodeInvalidPassword)
	}
	return nil
}

func Department(department string) *errors.AppError {
	for _, d := range Departments {
		if department == d {
			return nil
		}
	}
	return errors.NewFieldValidationError("department", "must be one of "+strings.Join(Departments, ", "))
}

// UUID rejects identifiers that do not round-trip through the canonical
// textual form, matching how ids are generated server-side.
func UUID(field, id string) *errors.AppError {
	if strings.TrimSpace(id) == "" {
		return errors.NewValidationError(field+" is required", errors.CodeMissingField)
	}
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != strings.ToLower(id) {
		return errors.NewValidationError(field+" must be a valid UUID", errors.CodeInvalidFormat)
	}
	return nil
}

func NonEmpty(field, value string) *errors.AppError {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(field+" is required", errors.CodeMissingField)
	}
	return nil
}

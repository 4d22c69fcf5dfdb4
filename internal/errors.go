package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Internal error codes, grouped by range. These travel in the response
// envelope's status_code field; the HTTP status only mirrors the class.
const (
	CodeSuccess = 200

	// 4000-4099 validation / auth
	CodeMissingField        = 4000
	CodeInvalidFormat       = 4001
	CodeValidation          = 4002
	CodeInvalidCredentials  = 4003
	CodeInvalidEmail        = 4004
	CodeInvalidPassword     = 4005
	CodeInvalidToken        = 4006
	CodeExpiredToken        = 4007
	CodeInvalidTokenPayload = 4008

	// 4100-4199 user
	CodeUserExists         = 4100
	CodeUserNotFound       = 4101
	CodeUnauthorizedAccess = 4102

	// 5000-5099 store
	CodeDatabaseConnection = 5000
	CodeRecordNotFound     = 5001
	CodeDuplicateRecord    = 5002
	CodeDatabaseOperation  = 5003

	// 6000-6099 asset
	CodeAssetNotFound        = 6000
	CodeAssetAlreadyAssigned = 6001
	CodeAssetNotAssigned     = 6002
	CodeInvalidAssetOp       = 6003

	// 7000-7099 system
	CodeSystem           = 7000
	CodeConfiguration    = 7001
	CodePermissionDenied = 7002
)

// AppError is the single error type that crosses domain boundaries. Store
// errors are translated into AppErrors by the domain that invoked the store;
// the HTTP layer translates AppErrors into the wire envelope exactly once.
type AppError struct {
	Code       int    `json:"status_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Cause      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, HTTPStatus: e.HTTPStatus, Cause: cause}
}

// WithMessage returns a copy carrying the same code and class but a
// different user-safe message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, HTTPStatus: e.HTTPStatus, Cause: e.Cause}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    int    `json:"status_code"`
		Message string `json:"message"`
	}{Code: e.Code, Message: e.Message})
}

func NewValidationError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusBadRequest}
}

func NewFieldValidationError(field, message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    fmt.Sprintf("%s: %s", field, message),
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewUnauthorizedError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusUnauthorized}
}

func NewForbiddenError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusForbidden}
}

func NewNotFoundError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusNotFound}
}

func NewConflictError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusConflict}
}

func NewInternalError(message string, code int, cause error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusInternalServerError, Cause: cause}
}

var (
	ErrInvalidCredentials  = NewUnauthorizedError("email or password incorrect", CodeInvalidCredentials)
	ErrInvalidToken        = NewUnauthorizedError("unauthorized, missing or invalid token", CodeInvalidToken)
	ErrExpiredToken        = NewUnauthorizedError("unauthorized, token has expired", CodeExpiredToken)
	ErrInvalidTokenPayload = NewUnauthorizedError("unauthorized, invalid token payload", CodeInvalidTokenPayload)

	ErrUserExists   = NewConflictError("user with this email already exists", CodeUserExists)
	ErrUserNotFound = NewNotFoundError("user does not exist", CodeUserNotFound)

	ErrAssetExists        = NewConflictError("asset already exists", CodeDuplicateRecord)
	ErrAssetNotFound      = NewNotFoundError("asset does not exist", CodeAssetNotFound)
	ErrAssetNotAssigned   = NewConflictError("asset is not assigned to the user", CodeAssetNotAssigned)
	ErrAssignedToThisUser = NewConflictError("asset already assigned to the user", CodeAssetAlreadyAssigned)
	ErrAssignedToOther    = NewConflictError("asset already assigned to other user", CodeAssetAlreadyAssigned)

	ErrPermissionDenied = NewForbiddenError("permission denied", CodePermissionDenied)

	ErrDatabaseOperation = NewInternalError("database operation failed", CodeDatabaseOperation, nil)
	ErrSystem            = NewInternalError("internal server error", CodeSystem, nil)
)

// AsAppError unwraps err into an AppError when possible. Unknown errors
// become a generic System error; the original stays attached for logging.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrSystem.WithCause(err)
}

package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/pkg/logger"
)

// Envelope is the wire shape shared by success and error responses. The
// status_code field carries the internal code, not the HTTP status.
type Envelope struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, httpStatus int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess writes a success envelope with an optional data payload.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, message string, data interface{}) {
	h.writeEnvelope(w, http.StatusOK, Envelope{
		StatusCode: internal.CodeSuccess,
		Message:    message,
		Data:       data,
	})
}

// WriteError translates any error into the envelope. AppErrors keep their
// internal code and HTTP class; anything else becomes a System error and the
// original is logged with full context.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	appErr := internal.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			"status_code", appErr.Code,
			"http_status", appErr.HTTPStatus,
			"error", appErr.Error(),
			"cause", appErr.Cause)
	} else {
		h.Logger.Warn("request rejected",
			"status_code", appErr.Code,
			"http_status", appErr.HTTPStatus,
			"message", appErr.Message)
	}

	h.writeEnvelope(w, appErr.HTTPStatus, Envelope{
		StatusCode: appErr.Code,
		Message:    appErr.Message,
	})
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}

// DecodeJSON decodes a request body into dst, mapping malformed payloads to
// a validation error.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return internal.NewValidationError("invalid request body", internal.CodeInvalidFormat)
	}
	return nil
}

package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
)

// ServiceAPI is the surface the HTTP layer consumes from the identity
// service.
type ServiceAPI interface {
	Signup(ctx context.Context, dto SignupDTO) (*AuthResult, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResult, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto SignupDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	result, err := h.Service.Signup(r.Context(), dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "user registered successfully", result)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	result, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "login successful", result)
}

// AuthMiddleware verifies the bearer credential and attaches the request
// principal. Handlers and gates read only the principal, never the header.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, internal.ErrInvalidToken)
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.WriteError(w, err)
			return
		}

		principal := internal.Principal{UserID: claims.UserID, Role: claims.Role}
		ctx := internal.ContextWithPrincipal(r.Context(), principal)
		ctx = logger.With(ctx, "user_id", principal.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

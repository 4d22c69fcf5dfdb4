package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/asset-management/internal/core/validation"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]View, error)
	Delete(ctx context.Context, id string) error
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

// ListUsers handles GET /users (admin only).
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.List(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "users fetched successfully", views)
}

// GetUser handles GET /user/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := validation.UUID("user_id", id); err != nil {
		h.WriteError(w, err)
		return
	}

	u, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "user fetched successfully", u.ToView())
}

// DeleteUser handles DELETE /user/{id} (admin only). Assignments and issues
// belonging to the user are removed by cascade.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := validation.UUID("user_id", id); err != nil {
		h.WriteError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "user deleted successfully", nil)
}

package asset

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/core/validation"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Asset, error)
	Add(ctx context.Context, dto AssetDTO) (*Asset, error)
	Delete(ctx context.Context, serialNumber string) error
	Assign(ctx context.Context, userID, assetID string) error
	Unassign(ctx context.Context, userID, assetID string) error
	AssignedToUser(ctx context.Context, userID string) (*UserAssets, error)
	AllAssignments(ctx context.Context) ([]UserAssignments, error)
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

// ListAssets handles GET /assets (admin only).
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.List(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "assets fetched successfully", assets)
}

// AddAsset handles POST /add-asset (admin only).
func (h *Handler) AddAsset(w http.ResponseWriter, r *http.Request) {
	var dto AssetDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	a, err := h.Service.Add(r.Context(), dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "asset added successfully", a)
}

// DeleteAsset handles DELETE /asset/{id} (admin only).
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := validation.UUID("asset_id", id); err != nil {
		h.WriteError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "asset deleted successfully", nil)
}

// AssignAsset handles POST /assign-asset (admin only).
func (h *Handler) AssignAsset(w http.ResponseWriter, r *http.Request) {
	var dto AssignDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, err)
		return
	}

	if err := h.Service.Assign(r.Context(), dto.UserID, dto.AssetID); err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "asset assigned successfully", nil)
}

// UnassignAsset handles POST /unassign-asset. A user may release their own
// assignment; admins may release anyone's.
func (h *Handler) UnassignAsset(w http.ResponseWriter, r *http.Request) {
	var dto AssignDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, err)
		return
	}

	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || !auth.CanAccess(principal, dto.UserID) {
		h.WriteError(w, internal.ErrPermissionDenied)
		return
	}

	if err := h.Service.Unassign(r.Context(), dto.UserID, dto.AssetID); err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "asset unassigned successfully", nil)
}

// AssignedAssets handles GET /assigned-assets/{uid} (self or admin).
func (h *Handler) AssignedAssets(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if err := validation.UUID("user_id", uid); err != nil {
		h.WriteError(w, err)
		return
	}

	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || !auth.CanAccess(principal, uid) {
		h.WriteError(w, internal.ErrPermissionDenied)
		return
	}

	view, err := h.Service.AssignedToUser(r.Context(), uid)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "user assets fetched successfully", view)
}

// AllAssignments handles GET /assigned-assets/all (admin only).
func (h *Handler) AllAssignments(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.Service.AllAssignments(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "all assigned assets fetched successfully", grouped)
}

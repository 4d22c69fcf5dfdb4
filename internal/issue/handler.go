package issue

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
	Report(ctx context.Context, reporterID string, dto ReportIssueDTO) (*Issue, error)
	ListAll(ctx context.Context) ([]*Issue, error)
	ListForUser(ctx context.Context, userID string) ([]*Issue, error)
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

// ReportIssue handles POST /report-issue. The reporter is the authenticated
// principal; any user_id in the body is ignored.
func (h *Handler) ReportIssue(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrPermissionDenied)
		return
	}

	var dto ReportIssueDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	issue, err := h.Service.Report(r.Context(), principal.UserID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "issue reported successfully", issue)
}

// Issues handles GET /issues (admin only).
func (h *Handler) Issues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "issues fetched successfully", issues)
}

// UserIssues handles GET /issues/{uid} (self or admin).
func (h *Handler) UserIssues(w http.ResponseWriter, r *http.Request) {
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

	issues, err := h.Service.ListForUser(r.Context(), uid)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, "user issues fetched successfully", issues)
}

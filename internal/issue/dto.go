package issue

import (
	errors "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/validation"
)

// ReportIssueDTO is the transport shape for filing an issue. The reporter is
// always taken from the authenticated principal, never from the body.
type ReportIssueDTO struct {
	AssetID     string `json:"asset_id"`
	Description string `json:"description"`
}

func (d ReportIssueDTO) Validate() *errors.AppError {
	if err := validation.UUID("asset_id", d.AssetID); err != nil {
		return err
	}
	if err := validation.NonEmpty("description", d.Description); err != nil {
		return err
	}
	return nil
}

package asset

import (
	errors "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/validation"
)

// AssetDTO is the transport shape for creating an asset. The serial number
// is optional; the service generates one when absent.
type AssetDTO struct {
	SerialNumber string `json:"serial_number,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

func (d AssetDTO) Validate() *errors.AppError {
	if err := validation.NonEmpty("name", d.Name); err != nil {
		return err
	}
	if err := validation.NonEmpty("description", d.Description); err != nil {
		return err
	}
	if d.SerialNumber != "" {
		if err := validation.UUID("serial_number", d.SerialNumber); err != nil {
			return err
		}
	}
	return nil
}

// AssignDTO is the transport shape shared by assign and unassign requests.
type AssignDTO struct {
	UserID  string `json:"user_id"`
	AssetID string `json:"asset_id"`
}

func (d AssignDTO) Validate() *errors.AppError {
	if err := validation.UUID("user_id", d.UserID); err != nil {
		return err
	}
	if err := validation.UUID("asset_id", d.AssetID); err != nil {
		return err
	}
	return nil
}

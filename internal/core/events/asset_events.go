package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventAssetAssigned   = "asset.assigned"
	EventAssetUnassigned = "asset.unassigned"
	EventIssueReported   = "issue.reported"
)

func NewAssetAssignedEvent(userID, assetID, assignmentID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventAssetAssigned,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"user_id":       userID,
			"asset_id":      assetID,
			"assignment_id": assignmentID,
		},
	}
}

func NewAssetUnassignedEvent(userID, assetID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventAssetUnassigned,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"user_id":  userID,
			"asset_id": assetID,
		},
	}
}

func NewIssueReportedEvent(issueID, userID, assetID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventIssueReported,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"issue_id": issueID,
			"user_id":  userID,
			"asset_id": assetID,
		},
	}
}

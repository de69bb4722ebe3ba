package dto

import "encoding/json"

type CreateAuditLogRequest struct {
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	EntityName string          `json:"entity_name,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// TransitionDetails is the details payload written for every
// approval-lifecycle audit entry.
type TransitionDetails struct {
	DocumentType   string `json:"documentType"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
	Comment        string `json:"comment,omitempty"`
}

// ChecklistDetails is the details payload written when a checklist item
// flips state.
type ChecklistDetails struct {
	ItemID         string `json:"itemId"`
	ItemLabel      string `json:"itemLabel"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
	ProjectID      string `json:"projectId"`
}

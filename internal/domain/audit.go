package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is a best-effort mirror of a primary action. Its absence never
// invalidates the primary state; writers must not surface its failures.
type AuditLog struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ActorID    string          `gorm:"type:uuid;not null;index" json:"actor_id"`
	ActorName  string          `gorm:"type:varchar(255);not null" json:"actor_name"`
	ActorRole  string          `gorm:"type:varchar(50);not null" json:"actor_role"`
	Action     string          `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityType string          `gorm:"type:varchar(100);not null;index" json:"entity_type"`
	EntityID   string          `gorm:"type:varchar(100);index" json:"entity_id"`
	EntityName *string         `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    json.RawMessage `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

// Audit actions written by the approval and checklist services.
const (
	AuditActionDocumentApproved          = "document_approved"
	AuditActionDocumentRejected          = "document_rejected"
	AuditActionDocumentApprovalCancelled = "document_approval_cancelled"
	AuditActionChecklistItemChanged      = "documentation_check_item_changed"
)

const (
	AuditEntityDocument            = "document"
	AuditEntityQualificationObject = "qualification_object"
)

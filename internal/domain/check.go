package domain

import (
	"encoding/json"
	"time"
)

// DocumentationCheck is a checklist snapshot for one qualification object.
// Snapshots are insert-only; the latest one wins.
type DocumentationCheck struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	QualificationObjectID string          `gorm:"type:uuid;not null;index" json:"qualification_object_id"`
	ProjectID             string          `gorm:"type:uuid;not null;index" json:"project_id"`
	Items                 json.RawMessage `gorm:"type:jsonb" json:"items"`
	CheckedBy             string          `gorm:"type:uuid;not null" json:"checked_by"`
	CheckedByName         string          `gorm:"type:varchar(255);not null" json:"checked_by_name"`
	CheckedAt             time.Time       `gorm:"autoCreateTime" json:"checked_at"`
}

// DocumentationCheckItem is one checklist row inside Items.
type DocumentationCheckItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

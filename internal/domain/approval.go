package domain

import "time"

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is one of the three closed variants.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// ApprovalRecord is one entry of a document's approval ledger. Records are
// insert-only: a status change is always a new record, never an update, and
// the current status of a document is the status of its last record.
// ID and CreatedAt are assigned by the store; ordering is (created_at, id),
// so two concurrent inserts still have a total order owned by the database.
type ApprovalRecord struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	DocumentID string         `gorm:"type:uuid;not null;index" json:"document_id"`
	ActorID    string         `gorm:"type:uuid;not null" json:"actor_id"`
	ActorName  string         `gorm:"type:varchar(255);not null" json:"actor_name"`
	Status     ApprovalStatus `gorm:"type:varchar(20);not null" json:"status"`
	Comment    *string        `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// DocumentComment is annotative only; it never affects the resolved status.
type DocumentComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID string    `gorm:"type:uuid;not null;index" json:"document_id"`
	ActorID    string    `gorm:"type:uuid;not null" json:"actor_id"`
	ActorName  string    `gorm:"type:varchar(255);not null" json:"actor_name"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

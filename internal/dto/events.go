package dto

import "time"

// DocumentStatusChangedEvent is published to the broker after every
// successful transition. Consumers must re-pull resolved state; the payload
// alone does not reflect full project state.
type DocumentStatusChangedEvent struct {
	DocumentID   string    `json:"document_id"`
	ProjectID    string    `json:"project_id"`
	DocumentType string    `json:"document_type"`
	Status       string    `json:"status"`
	Comment      string    `json:"comment,omitempty"`
	ActorID      string    `json:"actor_id"`
	ActorName    string    `json:"actor_name"`
	OccurredAt   time.Time `json:"occurred_at"`
}

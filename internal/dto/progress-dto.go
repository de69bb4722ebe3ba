package dto

// ProtocolSlot is one expected qualification-protocol document, keyed by a
// selected qualification object.
type ProtocolSlot struct {
	ObjectID   string `json:"object_id"`
	ObjectType string `json:"object_type"`
	ObjectName string `json:"object_name"`
	DocumentID string `json:"document_id,omitempty"`
	Approved   bool   `json:"approved"`
}

// ProjectProgress is the cross-document approval aggregate for a project.
// TotalDocuments is always 2 (commercial offer + contract) plus one slot per
// selected qualification object, regardless of what was uploaded.
type ProjectProgress struct {
	ProjectID               string         `json:"project_id"`
	CommercialOfferApproved bool           `json:"commercial_offer_approved"`
	ContractApproved        bool           `json:"contract_approved"`
	ProtocolSlots           []ProtocolSlot `json:"protocol_slots"`
	ApprovedCount           int            `json:"approved_count"`
	TotalDocuments          int            `json:"total_documents"`
	ProgressPercentage      float64        `json:"progress_percentage"`
}

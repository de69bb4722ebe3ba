package domain

import "time"

type DocumentType string

const (
	DocumentTypeCommercialOffer       DocumentType = "commercial_offer"
	DocumentTypeContract              DocumentType = "contract"
	DocumentTypeQualificationProtocol DocumentType = "qualification_protocol"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeCommercialOffer, DocumentTypeContract, DocumentTypeQualificationProtocol:
		return true
	}
	return false
}

// ProjectDocument is created once on upload and never mutated afterwards;
// everything derived (status, progress) lives in the approval ledger.
type ProjectDocument struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    string       `gorm:"type:uuid;not null;index" json:"project_id"`
	DocumentType DocumentType `gorm:"type:varchar(40);not null" json:"document_type"`
	FileName     string       `gorm:"type:varchar(512);not null" json:"file_name"`
	FileSize     int64        `json:"file_size"`
	FileURL      string       `gorm:"type:text;not null" json:"file_url"`
	MimeType     *string      `gorm:"type:varchar(100)" json:"mime_type,omitempty"`
	UploadedBy   string       `gorm:"type:uuid;not null" json:"uploaded_by"`
	UploadedAt   time.Time    `gorm:"autoCreateTime" json:"uploaded_at"`
}

// QualificationProtocol associates a protocol document with a canonical
// object type and, optionally, a specific qualification object.
type QualificationProtocol struct {
	ID                    string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID             string    `gorm:"type:uuid;not null;index" json:"project_id"`
	QualificationObjectID *string   `gorm:"type:uuid" json:"qualification_object_id,omitempty"`
	ObjectType            string    `gorm:"type:varchar(100);not null" json:"object_type"`
	ObjectName            *string   `gorm:"type:varchar(255)" json:"object_name,omitempty"`
	ProtocolDocumentID    string    `gorm:"type:uuid;not null;index" json:"protocol_document_id"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`

	Document *ProjectDocument `gorm:"foreignKey:ProtocolDocumentID" json:"document,omitempty"`
}

// QualificationObject is an object selected for qualification within a
// project. Its Type comes from a vocabulary entered independently of the
// protocol upload form, so comparisons go through the objecttype package.
type QualificationObject struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID string    `gorm:"type:uuid;not null;index" json:"project_id"`
	Type      string    `gorm:"type:varchar(100);not null" json:"type"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Selected  bool      `gorm:"not null;default:true" json:"selected"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package dto

// UploadDocumentInput describes one document upload. For qualification
// protocols ObjectType carries the label or key picked in the upload form,
// which may come from a different vocabulary than the selected objects.
type UploadDocumentInput struct {
	ProjectID             string
	DocumentType          string
	ObjectType            string
	ObjectName            string
	QualificationObjectID string
	FileName              string
	MimeType              string
	Data                  []byte
}

type ObjectTypeEntry struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	DisplayName string `json:"display_name"`
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/interfaces"
	"github.com/qualiflow/document_service/internal/objecttype"
	"github.com/qualiflow/document_service/internal/repository"
)

// DocumentService owns document creation. Documents are immutable after
// upload; the file content itself is opaque and lives behind the uploader.
type DocumentService interface {
	Upload(ctx context.Context, principal dto.Principal, input dto.UploadDocumentInput) (*domain.ProjectDocument, error)
	Get(documentID string) (*domain.ProjectDocument, error)
	ListByProject(projectID string) ([]domain.ProjectDocument, error)
	ListProtocols(projectID string) ([]domain.QualificationProtocol, error)
}

type documentService struct {
	documents repository.DocumentRepository
	uploader  interfaces.Uploader
}

func NewDocumentService(documents repository.DocumentRepository, uploader interfaces.Uploader) DocumentService {
	return &documentService{documents: documents, uploader: uploader}
}

func (s *documentService) Upload(ctx context.Context, principal dto.Principal, input dto.UploadDocumentInput) (*domain.ProjectDocument, error) {
	if !principal.Resolved() {
		return nil, domain.ErrAuthenticationRequired
	}
	docType := domain.DocumentType(input.DocumentType)
	if !docType.Valid() {
		return nil, errors.New("invalid document type")
	}
	if input.ProjectID == "" || input.FileName == "" || len(input.Data) == 0 {
		return nil, errors.New("project id, file name and file content are required")
	}
	if docType == domain.DocumentTypeQualificationProtocol && strings.TrimSpace(input.ObjectType) == "" {
		return nil, errors.New("object type is required for qualification protocols")
	}

	artifactName := input.FileName
	if docType == domain.DocumentTypeQualificationProtocol {
		artifactName = objecttype.ProtocolFileName(input.ObjectType, input.FileName)
	}

	folder := fmt.Sprintf("projects/%s/%s", input.ProjectID, docType)
	fileURL, err := s.uploader.UploadBytes(ctx, folder, artifactName, input.Data)
	if err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	doc := &domain.ProjectDocument{
		ID:           uuid.NewString(),
		ProjectID:    input.ProjectID,
		DocumentType: docType,
		FileName:     artifactName,
		FileSize:     int64(len(input.Data)),
		FileURL:      fileURL,
		UploadedBy:   principal.ActorID,
	}
	if input.MimeType != "" {
		mime := input.MimeType
		doc.MimeType = &mime
	}
	if err := s.documents.Create(doc); err != nil {
		return nil, err
	}

	if docType == domain.DocumentTypeQualificationProtocol {
		protocol := &domain.QualificationProtocol{
			ID:                 uuid.NewString(),
			ProjectID:          input.ProjectID,
			ObjectType:         objecttype.ToCanonical(input.ObjectType),
			ProtocolDocumentID: doc.ID,
		}
		if input.QualificationObjectID != "" {
			objectID := input.QualificationObjectID
			protocol.QualificationObjectID = &objectID
		}
		if input.ObjectName != "" {
			name := input.ObjectName
			protocol.ObjectName = &name
		}
		if err := s.documents.CreateProtocol(protocol); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (s *documentService) Get(documentID string) (*domain.ProjectDocument, error) {
	return s.documents.FindByID(documentID)
}

func (s *documentService) ListByProject(projectID string) ([]domain.ProjectDocument, error) {
	return s.documents.ListByProject(projectID)
}

func (s *documentService) ListProtocols(projectID string) ([]domain.QualificationProtocol, error) {
	return s.documents.ListProtocolsByProject(projectID)
}

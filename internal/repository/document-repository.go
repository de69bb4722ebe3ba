package repository

import (
	"errors"
	"fmt"

	"github.com/qualiflow/document_service/internal/domain"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(doc *domain.ProjectDocument) error
	FindByID(documentID string) (*domain.ProjectDocument, error)
	FindByProjectAndType(projectID string, docType domain.DocumentType) (*domain.ProjectDocument, error)
	ListByProject(projectID string) ([]domain.ProjectDocument, error)

	CreateProtocol(protocol *domain.QualificationProtocol) error
	ListProtocolsByProject(projectID string) ([]domain.QualificationProtocol, error)

	ListSelectedObjects(projectID string) ([]domain.QualificationObject, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *domain.ProjectDocument) error {
	if doc == nil {
		return errors.New("nil document")
	}
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (r *documentRepository) FindByID(documentID string) (*domain.ProjectDocument, error) {
	doc := &domain.ProjectDocument{}
	if err := r.db.First(doc, "id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

// FindByProjectAndType returns the most recently uploaded document of the
// given type, or nil when the project has none.
func (r *documentRepository) FindByProjectAndType(projectID string, docType domain.DocumentType) (*domain.ProjectDocument, error) {
	doc := &domain.ProjectDocument{}
	err := r.db.
		Where("project_id = ? AND document_type = ?", projectID, docType).
		Order("uploaded_at DESC").
		First(doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document by type: %w", err)
	}
	return doc, nil
}

func (r *documentRepository) ListByProject(projectID string) ([]domain.ProjectDocument, error) {
	var docs []domain.ProjectDocument
	err := r.db.
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (r *documentRepository) CreateProtocol(protocol *domain.QualificationProtocol) error {
	if protocol == nil {
		return errors.New("nil protocol")
	}
	if err := r.db.Create(protocol).Error; err != nil {
		return fmt.Errorf("create protocol: %w", err)
	}
	return nil
}

func (r *documentRepository) ListProtocolsByProject(projectID string) ([]domain.QualificationProtocol, error) {
	var protocols []domain.QualificationProtocol
	err := r.db.
		Preload("Document").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&protocols).Error
	if err != nil {
		return nil, fmt.Errorf("list protocols: %w", err)
	}
	return protocols, nil
}

func (r *documentRepository) ListSelectedObjects(projectID string) ([]domain.QualificationObject, error) {
	var objects []domain.QualificationObject
	err := r.db.
		Where("project_id = ? AND selected = true", projectID).
		Order("created_at ASC").
		Find(&objects).Error
	if err != nil {
		return nil, fmt.Errorf("list selected objects: %w", err)
	}
	return objects, nil
}

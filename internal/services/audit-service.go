package services

import (
	"encoding/json"
	"log"

	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/repository"
)

// AuditRecorder mirrors primary actions into the audit log. Record is
// best-effort by contract: it has no error return, so a storage failure can
// never unwind into the caller of a primary transition.
type AuditRecorder interface {
	Record(principal dto.Principal, action, entityType, entityID, entityName string, details any)
	Query(filter repository.AuditFilter) ([]domain.AuditLog, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditRecorder {
	return &auditService{repo: repo}
}

func (s *auditService) Record(principal dto.Principal, action, entityType, entityID, entityName string, details any) {
	entry := &domain.AuditLog{
		ActorID:    principal.ActorID,
		ActorName:  principal.ActorName,
		ActorRole:  principal.ActorRole,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if entityName != "" {
		entry.EntityName = &entityName
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Printf("audit: marshal details for %s failed: %v", action, err)
		} else {
			entry.Details = raw
		}
	}

	if err := s.repo.Insert(entry); err != nil {
		// Swallowed on purpose: the audit mirror never breaks the primary
		// operation.
		log.Printf("audit: write %s/%s failed: %v", action, entityID, err)
	}
}

func (s *auditService) Query(filter repository.AuditFilter) ([]domain.AuditLog, error) {
	return s.repo.Query(filter)
}

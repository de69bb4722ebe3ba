package services

import (
	"encoding/json"
	"fmt"

	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/repository"
)

// ChecklistService records documentation-check snapshots per qualification
// object. Snapshots are insert-only; a status flip of any item is mirrored
// into the audit log with previous/new status.
type ChecklistService interface {
	SaveCheck(principal dto.Principal, projectID, qualificationObjectID, objectName string, items []domain.DocumentationCheckItem) (*domain.DocumentationCheck, error)
	GetLatest(qualificationObjectID, projectID string) (*domain.DocumentationCheck, error)
	List(projectID string, limit, offset int) ([]domain.DocumentationCheck, error)
}

type checklistService struct {
	checks repository.CheckRepository
	audit  AuditRecorder
}

func NewChecklistService(checks repository.CheckRepository, audit AuditRecorder) ChecklistService {
	return &checklistService{checks: checks, audit: audit}
}

func (s *checklistService) SaveCheck(
	principal dto.Principal,
	projectID, qualificationObjectID, objectName string,
	items []domain.DocumentationCheckItem,
) (*domain.DocumentationCheck, error) {
	if !principal.Resolved() {
		return nil, domain.ErrAuthenticationRequired
	}

	latest, err := s.checks.FindLatest(qualificationObjectID, projectID)
	if err != nil {
		return nil, err
	}
	previous := map[string]bool{}
	if latest != nil {
		var prevItems []domain.DocumentationCheckItem
		if err := json.Unmarshal(latest.Items, &prevItems); err == nil {
			for _, item := range prevItems {
				previous[item.ID] = item.Completed
			}
		}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal checklist items: %w", err)
	}
	check := &domain.DocumentationCheck{
		QualificationObjectID: qualificationObjectID,
		ProjectID:             projectID,
		Items:                 raw,
		CheckedBy:             principal.ActorID,
		CheckedByName:         principal.ActorName,
	}
	if err := s.checks.Insert(check); err != nil {
		return nil, err
	}

	// One audit entry per flipped item, detached like the approval mirror.
	for _, item := range items {
		if previous[item.ID] == item.Completed {
			continue
		}
		details := dto.ChecklistDetails{
			ItemID:         item.ID,
			ItemLabel:      item.Label,
			PreviousStatus: completionStatus(previous[item.ID]),
			NewStatus:      completionStatus(item.Completed),
			ProjectID:      projectID,
		}
		go s.audit.Record(principal, domain.AuditActionChecklistItemChanged,
			domain.AuditEntityQualificationObject, qualificationObjectID, objectName, details)
	}

	return check, nil
}

func completionStatus(completed bool) string {
	if completed {
		return "completed"
	}
	return "pending"
}

func (s *checklistService) GetLatest(qualificationObjectID, projectID string) (*domain.DocumentationCheck, error) {
	return s.checks.FindLatest(qualificationObjectID, projectID)
}

func (s *checklistService) List(projectID string, limit, offset int) ([]domain.DocumentationCheck, error) {
	return s.checks.List(projectID, limit, offset)
}

package services

import (
	"strings"
	"time"

	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/repository"
)

// StatusListener is notified after every successful transition. The payload
// is a hint to refresh, not the full project state: listeners must re-query
// the resolver and the progress aggregate.
type StatusListener func(event dto.DocumentStatusChangedEvent)

const cancelDefaultComment = "Согласование отменено"

type ApprovalService interface {
	// Transitions. Each appends a new ledger record; nothing is ever
	// updated in place, so a blocked or failed call leaves no trace.
	Approve(principal dto.Principal, documentID, comment string) (*dto.TransitionResult, error)
	Reject(principal dto.Principal, documentID, comment string) (*dto.TransitionResult, error)
	Cancel(principal dto.Principal, documentID, comment string) (*dto.TransitionResult, error)

	// Resolved views. Pure reads of the ledger.
	ResolveStatus(documentID string) (domain.ApprovalStatus, error)
	GetApprovalHistory(documentID string) ([]domain.ApprovalRecord, error)
	GetApprovalStatus(documentID string) (*dto.DocumentApprovalStatus, error)

	// Comments are an independent channel; they never affect the status.
	AddComment(principal dto.Principal, documentID, comment string) (*domain.DocumentComment, error)
	GetComments(documentID string) ([]domain.DocumentComment, error)

	// OnStatusChange registers the embedding-side hook.
	OnStatusChange(listener StatusListener)
}

type approvalService struct {
	approvals repository.ApprovalRepository
	comments  repository.CommentRepository
	documents repository.DocumentRepository
	audit     AuditRecorder
	listener  StatusListener
}

func NewApprovalService(
	approvals repository.ApprovalRepository,
	comments repository.CommentRepository,
	documents repository.DocumentRepository,
	audit AuditRecorder,
) ApprovalService {
	return &approvalService{
		approvals: approvals,
		comments:  comments,
		documents: documents,
		audit:     audit,
	}
}

func (s *approvalService) OnStatusChange(listener StatusListener) {
	s.listener = listener
}

func (s *approvalService) Approve(principal dto.Principal, documentID, comment string) (*dto.TransitionResult, error) {
	return s.transition(principal, documentID, domain.ApprovalStatusApproved, comment, domain.AuditActionDocumentApproved)
}

func (s *approvalService) Reject(principal dto.Principal, documentID, comment string) (*dto.TransitionResult, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, domain.ErrCommentRequired
	}
	return s.transition(principal, documentID, domain.ApprovalStatusRejected, comment, domain.AuditActionDocumentRejected)
}

// Cancel re-opens a document by appending a pending record. History stays
// intact.
func (s *approvalService) Cancel(principal dto.Principal, documentID, comment string) (*dto.TransitionResult, error) {
	if strings.TrimSpace(comment) == "" {
		comment = cancelDefaultComment
	}
	return s.transition(principal, documentID, domain.ApprovalStatusPending, comment, domain.AuditActionDocumentApprovalCancelled)
}

func (s *approvalService) transition(
	principal dto.Principal,
	documentID string,
	status domain.ApprovalStatus,
	comment string,
	auditAction string,
) (*dto.TransitionResult, error) {
	if !principal.Resolved() {
		return nil, domain.ErrAuthenticationRequired
	}

	doc, err := s.documents.FindByID(documentID)
	if err != nil {
		return nil, err
	}

	previous, err := s.ResolveStatus(documentID)
	if err != nil {
		return nil, err
	}

	if status == domain.ApprovalStatusPending {
		blocked, reason, err := s.cancelBlocked(doc)
		if err != nil {
			return nil, err
		}
		if blocked {
			return &dto.TransitionResult{Blocked: true, Reason: reason}, nil
		}
	}

	record := &domain.ApprovalRecord{
		DocumentID: documentID,
		ActorID:    principal.ActorID,
		ActorName:  principal.ActorName,
		Status:     status,
	}
	if c := strings.TrimSpace(comment); c != "" {
		record.Comment = &c
	}

	if err := s.approvals.Append(record); err != nil {
		return nil, err
	}

	// Detached mirror write: the primary record is already committed and an
	// audit failure stays local to the recorder.
	details := dto.TransitionDetails{
		DocumentType:   string(doc.DocumentType),
		PreviousStatus: string(previous),
		NewStatus:      string(status),
		Comment:        strings.TrimSpace(comment),
	}
	go s.audit.Record(principal, auditAction, domain.AuditEntityDocument, doc.ID, doc.FileName, details)

	if s.listener != nil {
		s.listener(dto.DocumentStatusChangedEvent{
			DocumentID:   doc.ID,
			ProjectID:    doc.ProjectID,
			DocumentType: string(doc.DocumentType),
			Status:       string(status),
			Comment:      strings.TrimSpace(comment),
			ActorID:      principal.ActorID,
			ActorName:    principal.ActorName,
			OccurredAt:   time.Now(),
		})
	}

	return &dto.TransitionResult{Record: record}, nil
}

// cancelBlocked applies the one default business rule: a commercial offer
// cannot be re-opened while the project's contract resolves to approved.
func (s *approvalService) cancelBlocked(doc *domain.ProjectDocument) (bool, string, error) {
	if doc.DocumentType != domain.DocumentTypeCommercialOffer {
		return false, "", nil
	}

	contract, err := s.documents.FindByProjectAndType(doc.ProjectID, domain.DocumentTypeContract)
	if err != nil {
		return false, "", err
	}
	if contract == nil {
		return false, "", nil
	}

	contractStatus, err := s.ResolveStatus(contract.ID)
	if err != nil {
		return false, "", err
	}
	if contractStatus == domain.ApprovalStatusApproved {
		return true, "Нельзя отменить согласование коммерческого предложения: договор уже согласован", nil
	}
	return false, "", nil
}

// ResolveStatus derives the current status from the ledger: the status of
// the chronologically last record, or pending when the ledger is empty. Read
// failures propagate; no silent default is returned.
func (s *approvalService) ResolveStatus(documentID string) (domain.ApprovalStatus, error) {
	records, err := s.approvals.ListByDocument(documentID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return domain.ApprovalStatusPending, nil
	}
	return records[len(records)-1].Status, nil
}

func (s *approvalService) GetApprovalHistory(documentID string) ([]domain.ApprovalRecord, error) {
	return s.approvals.ListByDocument(documentID)
}

func (s *approvalService) GetApprovalStatus(documentID string) (*dto.DocumentApprovalStatus, error) {
	history, err := s.approvals.ListByDocument(documentID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByDocument(documentID)
	if err != nil {
		return nil, err
	}

	result := &dto.DocumentApprovalStatus{
		DocumentID:      documentID,
		Status:          domain.ApprovalStatusPending,
		ApprovalHistory: history,
		Comments:        comments,
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		result.Status = last.Status
		result.LastApproval = &last
	}
	return result, nil
}

func (s *approvalService) AddComment(principal dto.Principal, documentID, comment string) (*domain.DocumentComment, error) {
	if !principal.Resolved() {
		return nil, domain.ErrAuthenticationRequired
	}
	text := strings.TrimSpace(comment)
	if text == "" {
		return nil, domain.ErrCommentRequired
	}
	if _, err := s.documents.FindByID(documentID); err != nil {
		return nil, err
	}

	record := &domain.DocumentComment{
		DocumentID: documentID,
		ActorID:    principal.ActorID,
		ActorName:  principal.ActorName,
		Comment:    text,
	}
	if err := s.comments.Append(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *approvalService) GetComments(documentID string) ([]domain.DocumentComment, error) {
	return s.comments.ListByDocument(documentID)
}

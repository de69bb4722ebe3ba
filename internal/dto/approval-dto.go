package dto

import "github.com/qualiflow/document_service/internal/domain"

type TransitionRequest struct {
	DocumentID string `json:"document_id"`
	Comment    string `json:"comment,omitempty"`
}

// TransitionResult is the outcome of approve/reject/cancel. Blocked is a
// normal negative result, not an error: nothing was appended and Reason says
// why.
type TransitionResult struct {
	Blocked bool                   `json:"blocked"`
	Reason  string                 `json:"reason,omitempty"`
	Record  *domain.ApprovalRecord `json:"record,omitempty"`
}

// DocumentApprovalStatus is the resolved view of one document's ledger.
type DocumentApprovalStatus struct {
	DocumentID      string                   `json:"document_id"`
	Status          domain.ApprovalStatus    `json:"status"`
	LastApproval    *domain.ApprovalRecord   `json:"last_approval,omitempty"`
	ApprovalHistory []domain.ApprovalRecord  `json:"approval_history"`
	Comments        []domain.DocumentComment `json:"comments"`
}

type AddCommentRequest struct {
	DocumentID string `json:"document_id"`
	Comment    string `json:"comment"`
}

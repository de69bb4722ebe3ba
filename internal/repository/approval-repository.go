package repository

import (
	"fmt"

	"github.com/qualiflow/document_service/internal/domain"
	"gorm.io/gorm"
)

// ApprovalRepository is the approval ledger. Append-only: there is no update
// or delete, and callers never set IDs or timestamps themselves.
type ApprovalRepository interface {
	Append(record *domain.ApprovalRecord) error
	ListByDocument(documentID string) ([]domain.ApprovalRecord, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Append(record *domain.ApprovalRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("append approval record: %w", err)
	}
	return nil
}

// ListByDocument returns the full ledger for a document in chronological
// order. The id tiebreak keeps same-timestamp inserts totally ordered by the
// store, not by client clocks.
func (r *approvalRepository) ListByDocument(documentID string) ([]domain.ApprovalRecord, error) {
	var records []domain.ApprovalRecord
	err := r.db.
		Where("document_id = ?", documentID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list approval records: %w", err)
	}
	return records, nil
}

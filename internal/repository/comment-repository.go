package repository

import (
	"fmt"

	"github.com/qualiflow/document_service/internal/domain"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Append(comment *domain.DocumentComment) error
	ListByDocument(documentID string) ([]domain.DocumentComment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Append(comment *domain.DocumentComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	return nil
}

func (r *commentRepository) ListByDocument(documentID string) ([]domain.DocumentComment, error) {
	var comments []domain.DocumentComment
	err := r.db.
		Where("document_id = ?", documentID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

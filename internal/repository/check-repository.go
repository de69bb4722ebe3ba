package repository

import (
	"errors"
	"fmt"

	"github.com/qualiflow/document_service/internal/domain"
	"gorm.io/gorm"
)

type CheckRepository interface {
	Insert(check *domain.DocumentationCheck) error
	FindLatest(qualificationObjectID, projectID string) (*domain.DocumentationCheck, error)
	List(projectID string, limit, offset int) ([]domain.DocumentationCheck, error)
}

type checkRepository struct {
	db *gorm.DB
}

func NewCheckRepository(db *gorm.DB) CheckRepository {
	return &checkRepository{db: db}
}

func (r *checkRepository) Insert(check *domain.DocumentationCheck) error {
	if err := r.db.Create(check).Error; err != nil {
		return fmt.Errorf("insert documentation check: %w", err)
	}
	return nil
}

// FindLatest returns the newest snapshot for the object, or nil when none
// has been recorded yet.
func (r *checkRepository) FindLatest(qualificationObjectID, projectID string) (*domain.DocumentationCheck, error) {
	check := &domain.DocumentationCheck{}
	err := r.db.
		Where("qualification_object_id = ? AND project_id = ?", qualificationObjectID, projectID).
		Order("checked_at DESC, id DESC").
		First(check).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest documentation check: %w", err)
	}
	return check, nil
}

func (r *checkRepository) List(projectID string, limit, offset int) ([]domain.DocumentationCheck, error) {
	if limit <= 0 {
		limit = 100
	}
	var checks []domain.DocumentationCheck
	err := r.db.
		Where("project_id = ?", projectID).
		Order("checked_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&checks).Error
	if err != nil {
		return nil, fmt.Errorf("list documentation checks: %w", err)
	}
	return checks, nil
}

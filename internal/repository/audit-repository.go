package repository

import (
	"fmt"
	"time"

	"github.com/qualiflow/document_service/internal/domain"
	"gorm.io/gorm"
)

// AuditFilter narrows an audit query. Zero-valued fields are ignored.
type AuditFilter struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

type AuditRepository interface {
	Insert(entry *domain.AuditLog) error
	Query(filter AuditFilter) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(entry *domain.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// Query returns entries in reverse-chronological order. Limit defaults to
// 100 when unset.
func (r *auditRepository) Query(filter AuditFilter) ([]domain.AuditLog, error) {
	q := r.db.Model(&domain.AuditLog{})

	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var entries []domain.AuditLog
	err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	return entries, nil
}

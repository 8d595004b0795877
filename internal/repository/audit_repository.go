package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditEntry, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "append audit entry failed")
	}
	return nil
}

func (r *auditRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	var out []models.AuditEntry
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list audit entries failed")
	}
	return out, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

type VersionRepository interface {
	BaseRepository[models.ComponentVersion]
	ListByComponent(ctx context.Context, componentID uuid.UUID) ([]models.ComponentVersion, error)
	GetVariant(ctx context.Context, componentID uuid.UUID, framework, cssFramework, versionNumber string, dest *models.ComponentVersion) error
	GetDefault(ctx context.Context, componentID uuid.UUID, dest *models.ComponentVersion) error
	SetDefault(ctx context.Context, componentID, versionID uuid.UUID) error
}

type versionRepository struct {
	BaseRepository[models.ComponentVersion]
	db *gorm.DB
}

func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{BaseRepository: NewBaseRepository[models.ComponentVersion](db), db: db}
}

func (r *versionRepository) ListByComponent(ctx context.Context, componentID uuid.UUID) ([]models.ComponentVersion, error) {
	var out []models.ComponentVersion
	if err := r.db.WithContext(ctx).Where("component_id = ?", componentID).
		Order("framework ASC, css_framework ASC, version_number DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list versions failed")
	}
	return out, nil
}

func (r *versionRepository) GetVariant(ctx context.Context, componentID uuid.UUID, framework, cssFramework, versionNumber string, dest *models.ComponentVersion) error {
	err := r.db.WithContext(ctx).
		Where("component_id = ? AND framework = ? AND css_framework = ? AND version_number = ?",
			componentID, framework, cssFramework, versionNumber).
		First(dest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "version not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get version variant failed")
	}
	return nil
}

func (r *versionRepository) GetDefault(ctx context.Context, componentID uuid.UUID, dest *models.ComponentVersion) error {
	if err := r.db.WithContext(ctx).Where("component_id = ? AND is_default = true", componentID).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "no default version")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get default version failed")
	}
	return nil
}

// SetDefault promotes a version and demotes the previous default in one
// transaction, so the at-most-one-default invariant holds at every commit.
func (r *versionRepository) SetDefault(ctx context.Context, componentID, versionID uuid.UUID) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return appErr.Wrap(tx.Error, appErr.CodeInternal, "begin transaction failed")
	}

	if err := tx.Model(&models.ComponentVersion{}).
		Where("component_id = ? AND is_default = true", componentID).
		Update("is_default", false).Error; err != nil {
		tx.Rollback()
		return appErr.Wrap(err, appErr.CodeInternal, "clear default flag failed")
	}

	res := tx.Model(&models.ComponentVersion{}).
		Where("id = ? AND component_id = ?", versionID, componentID).
		Update("is_default", true)
	if res.Error != nil {
		tx.Rollback()
		return appErr.Wrap(res.Error, appErr.CodeInternal, "set default flag failed")
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return appErr.New(appErr.CodeNotFound, "version not found")
	}

	if err := tx.Commit().Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "commit transaction failed")
	}
	return nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, componentID uuid.UUID) error
	Remove(ctx context.Context, userID, componentID uuid.UUID) error
	ListComponents(ctx context.Context, userID uuid.UUID) ([]models.Component, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add is idempotent; starring an already-starred component is a no-op.
func (r *favoriteRepository) Add(ctx context.Context, userID, componentID uuid.UUID) error {
	fav := models.Favorite{UserID: userID, ComponentID: componentID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "component_id"}},
			DoNothing: true,
		}).
		Create(&fav).Error
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "add favorite failed")
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, componentID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND component_id = ?", userID, componentID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "remove favorite failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "favorite not found")
	}
	return nil
}

func (r *favoriteRepository) ListComponents(ctx context.Context, userID uuid.UUID) ([]models.Component, error) {
	var out []models.Component
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.component_id = components.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list favorites failed")
	}
	return out, nil
}

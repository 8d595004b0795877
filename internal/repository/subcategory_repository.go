package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

// SubcategoryFilters narrows subcategory listings. Nil fields are not applied.
type SubcategoryFilters struct {
	CategoryID *uuid.UUID
	IsActive   *bool
	Search     string
}

type SubcategoryRepository interface {
	BaseRepository[models.Subcategory]
	GetBySlug(ctx context.Context, categoryID uuid.UUID, slug string, dest *models.Subcategory) error
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	Paginate(ctx context.Context, opts PageOptions, f SubcategoryFilters) (*Page[models.Subcategory], error)
	Reorder(ctx context.Context, updates []SortOrderUpdate) error
	CountComponents(ctx context.Context, subcategoryID uuid.UUID) (int64, error)
}

type subcategoryRepository struct {
	BaseRepository[models.Subcategory]
	db *gorm.DB
}

func NewSubcategoryRepository(db *gorm.DB) SubcategoryRepository {
	return &subcategoryRepository{BaseRepository: NewBaseRepository[models.Subcategory](db), db: db}
}

func (r *subcategoryRepository) GetBySlug(ctx context.Context, categoryID uuid.UUID, slug string, dest *models.Subcategory) error {
	if err := r.db.WithContext(ctx).Where("category_id = ? AND slug = ?", categoryID, slug).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "subcategory not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get subcategory by slug failed")
	}
	return nil
}

func (r *subcategoryRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	var out []models.Subcategory
	if err := r.db.WithContext(ctx).Where("category_id = ? AND is_active = true", categoryID).Order(siblingOrder).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list subcategories failed")
	}
	return out, nil
}

func (r *subcategoryRepository) Paginate(ctx context.Context, opts PageOptions, f SubcategoryFilters) (*Page[models.Subcategory], error) {
	build := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Subcategory{})
		if f.CategoryID != nil {
			q = q.Where("category_id = ?", *f.CategoryID)
		}
		if f.IsActive != nil {
			q = q.Where("is_active = ?", *f.IsActive)
		}
		if f.Search != "" {
			q = q.Where("name ILIKE ?", "%"+f.Search+"%")
		}
		return q
	}
	return paginate[models.Subcategory](opts, orderClause(opts), build)
}

func (r *subcategoryRepository) Reorder(ctx context.Context, updates []SortOrderUpdate) error {
	return reorderRows[models.Subcategory](ctx, r.db, updates)
}

func (r *subcategoryRepository) CountComponents(ctx context.Context, subcategoryID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Component{}).Where("subcategory_id = ?", subcategoryID).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count components failed")
	}
	return n, nil
}

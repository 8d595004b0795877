package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

// CategoryFilters narrows category listings. Nil fields are not applied.
type CategoryFilters struct {
	ProductID *uuid.UUID
	IsActive  *bool
	Search    string
}

// CategoryStats is one row of the per-category aggregate.
type CategoryStats struct {
	CategoryID       uuid.UUID `json:"category_id"`
	SubcategoryCount int64     `json:"subcategory_count"`
	ComponentCount   int64     `json:"component_count"`
}

type CategoryRepository interface {
	BaseRepository[models.Category]
	GetBySlug(ctx context.Context, productID uuid.UUID, slug string, dest *models.Category) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Category, error)
	Paginate(ctx context.Context, opts PageOptions, f CategoryFilters) (*Page[models.Category], error)
	Reorder(ctx context.Context, updates []SortOrderUpdate) error
	CountSubcategories(ctx context.Context, categoryID uuid.UUID) (int64, error)
	StatsByProduct(ctx context.Context, productID uuid.UUID) ([]CategoryStats, error)
}

type categoryRepository struct {
	BaseRepository[models.Category]
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{BaseRepository: NewBaseRepository[models.Category](db), db: db}
}

func (r *categoryRepository) GetBySlug(ctx context.Context, productID uuid.UUID, slug string, dest *models.Category) error {
	if err := r.db.WithContext(ctx).Where("product_id = ? AND slug = ?", productID, slug).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "category not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get category by slug failed")
	}
	return nil
}

// ListByProduct returns the active children in the sibling ordering contract.
func (r *categoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Category, error) {
	var out []models.Category
	if err := r.db.WithContext(ctx).Where("product_id = ? AND is_active = true", productID).Order(siblingOrder).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list categories failed")
	}
	return out, nil
}

func (r *categoryRepository) Paginate(ctx context.Context, opts PageOptions, f CategoryFilters) (*Page[models.Category], error) {
	build := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Category{})
		if f.ProductID != nil {
			q = q.Where("product_id = ?", *f.ProductID)
		}
		if f.IsActive != nil {
			q = q.Where("is_active = ?", *f.IsActive)
		}
		if f.Search != "" {
			q = q.Where("name ILIKE ?", "%"+f.Search+"%")
		}
		return q
	}
	return paginate[models.Category](opts, orderClause(opts), build)
}

func (r *categoryRepository) Reorder(ctx context.Context, updates []SortOrderUpdate) error {
	return reorderRows[models.Category](ctx, r.db, updates)
}

func (r *categoryRepository) CountSubcategories(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Subcategory{}).Where("category_id = ?", categoryID).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count subcategories failed")
	}
	return n, nil
}

// StatsByProduct aggregates child counts in a single GROUP BY instead of one
// round trip per category.
func (r *categoryRepository) StatsByProduct(ctx context.Context, productID uuid.UUID) ([]CategoryStats, error) {
	var out []CategoryStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id AS category_id,
		       COUNT(DISTINCT s.id) AS subcategory_count,
		       COUNT(comp.id) AS component_count
		FROM categories c
		LEFT JOIN subcategories s ON s.category_id = c.id AND s.deleted_at IS NULL
		LEFT JOIN components comp ON comp.subcategory_id = s.id AND comp.deleted_at IS NULL
		WHERE c.product_id = ? AND c.deleted_at IS NULL
		GROUP BY c.id`, productID).Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "category stats failed")
	}
	return out, nil
}

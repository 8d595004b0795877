package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

// ComponentFilters narrows component listings. CategoryID crosses a hierarchy
// boundary and is resolved with a join through subcategories.
type ComponentFilters struct {
	SubcategoryID *uuid.UUID
	CategoryID    *uuid.UUID
	Status        *models.ComponentStatus
	RequiredTier  *models.LicenseTier
	Framework     string
	IsFree        *bool
	IsFeatured    *bool
	IsActive      *bool
	Search        string
}

type ComponentRepository interface {
	BaseRepository[models.Component]
	GetBySlug(ctx context.Context, subcategoryID uuid.UUID, slug string, dest *models.Component) error
	ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]models.Component, error)
	Paginate(ctx context.Context, opts PageOptions, f ComponentFilters) (*Page[models.Component], error)
	Reorder(ctx context.Context, updates []SortOrderUpdate) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementCopyCount(ctx context.Context, id uuid.UUID) error
	CountVersions(ctx context.Context, componentID uuid.UUID) (int64, error)
}

type componentRepository struct {
	BaseRepository[models.Component]
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) ComponentRepository {
	return &componentRepository{BaseRepository: NewBaseRepository[models.Component](db), db: db}
}

func (r *componentRepository) GetBySlug(ctx context.Context, subcategoryID uuid.UUID, slug string, dest *models.Component) error {
	if err := r.db.WithContext(ctx).Where("subcategory_id = ? AND slug = ?", subcategoryID, slug).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "component not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get component by slug failed")
	}
	return nil
}

func (r *componentRepository) ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]models.Component, error) {
	var out []models.Component
	if err := r.db.WithContext(ctx).Where("subcategory_id = ? AND is_active = true", subcategoryID).Order(siblingOrder).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list components failed")
	}
	return out, nil
}

// Paginate builds the WHERE clause once for both the count and data queries.
// The category filter joins through subcategories; the framework filter uses
// an EXISTS subquery against versions so rows are never duplicated.
func (r *componentRepository) Paginate(ctx context.Context, opts PageOptions, f ComponentFilters) (*Page[models.Component], error) {
	build := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Component{})
		if f.CategoryID != nil {
			q = q.Joins("JOIN subcategories ON subcategories.id = components.subcategory_id").
				Where("subcategories.category_id = ? AND subcategories.deleted_at IS NULL", *f.CategoryID)
		}
		if f.SubcategoryID != nil {
			q = q.Where("components.subcategory_id = ?", *f.SubcategoryID)
		}
		if f.Status != nil {
			q = q.Where("components.status = ?", *f.Status)
		}
		if f.RequiredTier != nil {
			q = q.Where("components.required_tier = ?", *f.RequiredTier)
		}
		if f.Framework != "" {
			q = q.Where(`EXISTS (
				SELECT 1 FROM component_versions v
				WHERE v.component_id = components.id AND v.framework = ? AND v.deleted_at IS NULL)`, f.Framework)
		}
		if f.IsFree != nil {
			q = q.Where("components.is_free = ?", *f.IsFree)
		}
		if f.IsFeatured != nil {
			q = q.Where("components.is_featured = ?", *f.IsFeatured)
		}
		if f.IsActive != nil {
			q = q.Where("components.is_active = ?", *f.IsActive)
		}
		if f.Search != "" {
			q = q.Where("components.name ILIKE ?", "%"+f.Search+"%")
		}
		return q
	}
	return paginate[models.Component](opts, orderClause(opts), build)
}

func (r *componentRepository) Reorder(ctx context.Context, updates []SortOrderUpdate) error {
	return reorderRows[models.Component](ctx, r.db, updates)
}

// IncrementViewCount is a single UPDATE so concurrent increments never lose
// writes. Read-modify-write is not acceptable here.
func (r *componentRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "view_count")
}

func (r *componentRepository) IncrementCopyCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "copy_count")
}

func (r *componentRepository) increment(ctx context.Context, id uuid.UUID, col string) error {
	res := r.db.WithContext(ctx).Model(&models.Component{}).Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + 1"))
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "increment "+col+" failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "component not found")
	}
	return nil
}

func (r *componentRepository) CountVersions(ctx context.Context, componentID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ComponentVersion{}).Where("component_id = ?", componentID).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count versions failed")
	}
	return n, nil
}

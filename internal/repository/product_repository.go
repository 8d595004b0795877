package repository

import (
	"context"

	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

type ProductRepository interface {
	BaseRepository[models.Product]
	GetBySlug(ctx context.Context, slug string, dest *models.Product) error
	ListActive(ctx context.Context) ([]models.Product, error)
	Paginate(ctx context.Context, opts PageOptions) (*Page[models.Product], error)
	Reorder(ctx context.Context, updates []SortOrderUpdate) error
	CountCategories(ctx context.Context, productID any) (int64, error)
}

type productRepository struct {
	BaseRepository[models.Product]
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{BaseRepository: NewBaseRepository[models.Product](db), db: db}
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string, dest *models.Product) error {
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "product not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get product by slug failed")
	}
	return nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := r.db.WithContext(ctx).Where("is_active = true").Order(siblingOrder).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list products failed")
	}
	return out, nil
}

func (r *productRepository) Paginate(ctx context.Context, opts PageOptions) (*Page[models.Product], error) {
	return paginate[models.Product](opts, orderClause(opts), func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Product{})
	})
}

func (r *productRepository) Reorder(ctx context.Context, updates []SortOrderUpdate) error {
	return reorderRows[models.Product](ctx, r.db, updates)
}

func (r *productRepository) CountCategories(ctx context.Context, productID any) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count categories failed")
	}
	return n, nil
}

package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"github.com/ona-ui/catalog/pkg/logger"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	List(ctx context.Context, opts repository.PageOptions) (*repository.Page[models.Product], error)
	Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	Reorder(ctx context.Context, actorID uuid.UUID, updates []repository.SortOrderUpdate) error
}

type CreateProductInput struct {
	Name        string
	Slug        string
	Description string
	SortOrder   int
	IsActive    *bool
}

type UpdateProductInput struct {
	Name        *string
	Slug        *string
	Description *string
	SortOrder   *int
	IsActive    *bool
}

type productService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
}

func NewProductService(productRepo repository.ProductRepository, auditRepo repository.AuditRepository) ProductService {
	return &productService{productRepo: productRepo, auditRepo: auditRepo}
}

var _ ProductService = (*productService)(nil)

func (s *productService) Create(ctx context.Context, actorID uuid.UUID, input *CreateProductInput) (*models.Product, error) {
	logger.L().Info("create product", zap.String("slug", input.Slug))

	p := &models.Product{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, mapWriteError(err, "product slug already in use")
	}

	recordAudit(ctx, s.auditRepo, actorID, "product.create", "product", &p.ID, map[string]any{"slug": p.Slug})
	return p, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := s.productRepo.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := s.productRepo.GetBySlug(ctx, slug, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) ListActive(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.ListActive(ctx)
}

func (s *productService) List(ctx context.Context, opts repository.PageOptions) (*repository.Page[models.Product], error) {
	return s.productRepo.Paginate(ctx, opts)
}

func (s *productService) Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateProductInput) (*models.Product, error) {
	var p models.Product
	if err := s.productRepo.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Slug != nil {
		p.Slug = *input.Slug
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.SortOrder != nil {
		p.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, &p); err != nil {
		return nil, mapWriteError(err, "product slug already in use")
	}

	recordAudit(ctx, s.auditRepo, actorID, "product.update", "product", &id, nil)
	return &p, nil
}

// Delete refuses to remove a product that still has categories.
func (s *productService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	var p models.Product
	if err := s.productRepo.GetByID(ctx, id, &p); err != nil {
		return err
	}

	n, err := s.productRepo.CountCategories(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return appErr.New(appErr.CodeConflict, "product has categories").WithMeta("category_count", n)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "product.delete", "product", &id, map[string]any{"slug": p.Slug})
	return nil
}

func (s *productService) Reorder(ctx context.Context, actorID uuid.UUID, updates []repository.SortOrderUpdate) error {
	logger.L().Info("reorder products", zap.Int("count", len(updates)))

	if err := s.productRepo.Reorder(ctx, updates); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "product.reorder", "product", nil, map[string]any{"count": len(updates)})
	return nil
}

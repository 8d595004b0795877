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

// CategoryService orchestrates category operations: validation has already
// happened at the handler, invariants that span tables are enforced here.
type CategoryService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *CreateCategoryInput) (*models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, opts repository.PageOptions, f repository.CategoryFilters) (*repository.Page[models.Category], error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateCategoryInput) (*models.Category, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	CheckSlug(ctx context.Context, productID uuid.UUID, slug string, excludeID *uuid.UUID) (*SlugCheck[models.Category], error)
	Reorder(ctx context.Context, actorID, productID uuid.UUID, updates []repository.SortOrderUpdate) error
	Batch(ctx context.Context, actorID uuid.UUID, input *CategoryBatchInput) (*BatchResult, error)
	Stats(ctx context.Context, productID uuid.UUID) ([]repository.CategoryStats, error)
}

type CreateCategoryInput struct {
	ProductID   uuid.UUID
	Name        string
	Slug        string
	Description string
	IconName    string
	SortOrder   int
	IsActive    *bool
}

type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	IconName    *string
	SortOrder   *int
	IsActive    *bool
}

// CategoryBatchInput drives one best-effort bulk action over category ids.
type CategoryBatchInput struct {
	Operation       BatchOperation
	IDs             []uuid.UUID
	Update          *UpdateCategoryInput
	TargetProductID *uuid.UUID
}

// SlugCheck reports slug availability under one parent scope.
type SlugCheck[T any] struct {
	Available bool `json:"available"`
	Existing  *T   `json:"existing"`
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, auditRepo repository.AuditRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, auditRepo: auditRepo}
}

var _ CategoryService = (*categoryService)(nil)

func (s *categoryService) Create(ctx context.Context, actorID uuid.UUID, input *CreateCategoryInput) (*models.Category, error) {
	logger.L().Info("create category", zap.String("product_id", input.ProductID.String()), zap.String("slug", input.Slug))

	c := &models.Category{
		ProductID:   input.ProductID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		IconName:    input.IconName,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, mapWriteError(err, "category slug already in use under this product")
	}

	recordAudit(ctx, s.auditRepo, actorID, "category.create", "category", &c.ID, map[string]any{"slug": c.Slug})
	return c, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := s.categoryRepo.GetByID(ctx, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *categoryService) List(ctx context.Context, opts repository.PageOptions, f repository.CategoryFilters) (*repository.Page[models.Category], error) {
	return s.categoryRepo.Paginate(ctx, opts, f)
}

func (s *categoryService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Category, error) {
	return s.categoryRepo.ListByProduct(ctx, productID)
}

func (s *categoryService) Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateCategoryInput) (*models.Category, error) {
	var c models.Category
	if err := s.categoryRepo.GetByID(ctx, id, &c); err != nil {
		return nil, err
	}

	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Slug != nil {
		c.Slug = *input.Slug
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	if input.IconName != nil {
		c.IconName = *input.IconName
	}
	if input.SortOrder != nil {
		c.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, &c); err != nil {
		return nil, mapWriteError(err, "category slug already in use under this product")
	}

	recordAudit(ctx, s.auditRepo, actorID, "category.update", "category", &id, nil)
	return &c, nil
}

// Delete refuses to remove a category that still has subcategories. Children
// must be deleted first; the DB-level cascade is a deliberate separate path.
func (s *categoryService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	var c models.Category
	if err := s.categoryRepo.GetByID(ctx, id, &c); err != nil {
		return err
	}

	n, err := s.categoryRepo.CountSubcategories(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return appErr.New(appErr.CodeConflict, "category has subcategories").WithMeta("subcategory_count", n)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "category.delete", "category", &id, map[string]any{"slug": c.Slug})
	return nil
}

// CheckSlug treats an absent row and a repository not-found the same way:
// both mean the slug is available. When excludeID matches the only existing
// row the slug is considered available for that row's own edit.
func (s *categoryService) CheckSlug(ctx context.Context, productID uuid.UUID, slug string, excludeID *uuid.UUID) (*SlugCheck[models.Category], error) {
	var existing models.Category
	err := s.categoryRepo.GetBySlug(ctx, productID, slug, &existing)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return &SlugCheck[models.Category]{Available: true}, nil
		}
		return nil, err
	}
	if excludeID != nil && existing.ID == *excludeID {
		return &SlugCheck[models.Category]{Available: true, Existing: &existing}, nil
	}
	return &SlugCheck[models.Category]{Available: false, Existing: &existing}, nil
}

// Reorder applies the submitted pairs in one transaction and writes a single
// audit entry for the whole action. Partial submissions are allowed; omitted
// siblings keep their previous sortOrder.
func (s *categoryService) Reorder(ctx context.Context, actorID, productID uuid.UUID, updates []repository.SortOrderUpdate) error {
	logger.L().Info("reorder categories", zap.String("product_id", productID.String()), zap.Int("count", len(updates)))

	if err := s.categoryRepo.Reorder(ctx, updates); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "category.reorder", "category", nil, map[string]any{
		"product_id": productID.String(),
		"count":      len(updates),
	})
	return nil
}

func (s *categoryService) Batch(ctx context.Context, actorID uuid.UUID, input *CategoryBatchInput) (*BatchResult, error) {
	logger.L().Info("batch categories", zap.String("operation", string(input.Operation)), zap.Int("count", len(input.IDs)))

	var fn func(uuid.UUID) error
	switch input.Operation {
	case BatchActivate:
		fn = func(id uuid.UUID) error { return s.setActive(ctx, id, true) }
	case BatchDeactivate:
		fn = func(id uuid.UUID) error { return s.setActive(ctx, id, false) }
	case BatchDelete:
		fn = func(id uuid.UUID) error { return s.Delete(ctx, actorID, id) }
	case BatchUpdate:
		if input.Update == nil {
			return nil, appErr.New(appErr.CodeValidation, "update data required for batch update")
		}
		fn = func(id uuid.UUID) error {
			_, err := s.Update(ctx, actorID, id, input.Update)
			return err
		}
	case BatchMove:
		if input.TargetProductID == nil {
			return nil, appErr.New(appErr.CodeValidation, "target product required for batch move")
		}
		fn = func(id uuid.UUID) error { return s.move(ctx, id, *input.TargetProductID) }
	default:
		return nil, appErr.New(appErr.CodeValidation, "unknown batch operation")
	}

	res := runBatch(input.IDs, input.Operation, fn)

	recordAudit(ctx, s.auditRepo, actorID, "category.batch."+string(input.Operation), "category", nil, map[string]any{
		"processed":  res.Processed,
		"successful": res.Successful,
		"failed":     res.Failed,
	})
	return res, nil
}

func (s *categoryService) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	var c models.Category
	if err := s.categoryRepo.GetByID(ctx, id, &c); err != nil {
		return err
	}
	c.IsActive = active
	return s.categoryRepo.Update(ctx, &c)
}

func (s *categoryService) move(ctx context.Context, id, targetProductID uuid.UUID) error {
	var c models.Category
	if err := s.categoryRepo.GetByID(ctx, id, &c); err != nil {
		return err
	}
	c.ProductID = targetProductID
	if err := s.categoryRepo.Update(ctx, &c); err != nil {
		return mapWriteError(err, "category slug already in use under target product")
	}
	return nil
}

func (s *categoryService) Stats(ctx context.Context, productID uuid.UUID) ([]repository.CategoryStats, error) {
	return s.categoryRepo.StatsByProduct(ctx, productID)
}

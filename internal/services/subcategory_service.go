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

type SubcategoryService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *CreateSubcategoryInput) (*models.Subcategory, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	List(ctx context.Context, opts repository.PageOptions, f repository.SubcategoryFilters) (*repository.Page[models.Subcategory], error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateSubcategoryInput) (*models.Subcategory, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	CheckSlug(ctx context.Context, categoryID uuid.UUID, slug string, excludeID *uuid.UUID) (*SlugCheck[models.Subcategory], error)
	Reorder(ctx context.Context, actorID, categoryID uuid.UUID, updates []repository.SortOrderUpdate) error
	Batch(ctx context.Context, actorID uuid.UUID, input *SubcategoryBatchInput) (*BatchResult, error)
}

type CreateSubcategoryInput struct {
	CategoryID  uuid.UUID
	Name        string
	Slug        string
	Description string
	SortOrder   int
	IsActive    *bool
}

type UpdateSubcategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	SortOrder   *int
	IsActive    *bool
}

type SubcategoryBatchInput struct {
	Operation        BatchOperation
	IDs              []uuid.UUID
	Update           *UpdateSubcategoryInput
	TargetCategoryID *uuid.UUID
}

type subcategoryService struct {
	subcategoryRepo repository.SubcategoryRepository
	auditRepo       repository.AuditRepository
}

func NewSubcategoryService(subcategoryRepo repository.SubcategoryRepository, auditRepo repository.AuditRepository) SubcategoryService {
	return &subcategoryService{subcategoryRepo: subcategoryRepo, auditRepo: auditRepo}
}

var _ SubcategoryService = (*subcategoryService)(nil)

func (s *subcategoryService) Create(ctx context.Context, actorID uuid.UUID, input *CreateSubcategoryInput) (*models.Subcategory, error) {
	logger.L().Info("create subcategory", zap.String("category_id", input.CategoryID.String()), zap.String("slug", input.Slug))

	sc := &models.Subcategory{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		sc.IsActive = *input.IsActive
	}

	if err := s.subcategoryRepo.Create(ctx, sc); err != nil {
		return nil, mapWriteError(err, "subcategory slug already in use under this category")
	}

	recordAudit(ctx, s.auditRepo, actorID, "subcategory.create", "subcategory", &sc.ID, map[string]any{"slug": sc.Slug})
	return sc, nil
}

func (s *subcategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	var sc models.Subcategory
	if err := s.subcategoryRepo.GetByID(ctx, id, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *subcategoryService) List(ctx context.Context, opts repository.PageOptions, f repository.SubcategoryFilters) (*repository.Page[models.Subcategory], error) {
	return s.subcategoryRepo.Paginate(ctx, opts, f)
}

func (s *subcategoryService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	return s.subcategoryRepo.ListByCategory(ctx, categoryID)
}

func (s *subcategoryService) Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateSubcategoryInput) (*models.Subcategory, error) {
	var sc models.Subcategory
	if err := s.subcategoryRepo.GetByID(ctx, id, &sc); err != nil {
		return nil, err
	}

	if input.Name != nil {
		sc.Name = *input.Name
	}
	if input.Slug != nil {
		sc.Slug = *input.Slug
	}
	if input.Description != nil {
		sc.Description = *input.Description
	}
	if input.SortOrder != nil {
		sc.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		sc.IsActive = *input.IsActive
	}

	if err := s.subcategoryRepo.Update(ctx, &sc); err != nil {
		return nil, mapWriteError(err, "subcategory slug already in use under this category")
	}

	recordAudit(ctx, s.auditRepo, actorID, "subcategory.update", "subcategory", &id, nil)
	return &sc, nil
}

// Delete refuses to remove a subcategory that still has components.
func (s *subcategoryService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	var sc models.Subcategory
	if err := s.subcategoryRepo.GetByID(ctx, id, &sc); err != nil {
		return err
	}

	n, err := s.subcategoryRepo.CountComponents(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return appErr.New(appErr.CodeConflict, "subcategory has components").WithMeta("component_count", n)
	}

	if err := s.subcategoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "subcategory.delete", "subcategory", &id, map[string]any{"slug": sc.Slug})
	return nil
}

func (s *subcategoryService) CheckSlug(ctx context.Context, categoryID uuid.UUID, slug string, excludeID *uuid.UUID) (*SlugCheck[models.Subcategory], error) {
	var existing models.Subcategory
	err := s.subcategoryRepo.GetBySlug(ctx, categoryID, slug, &existing)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return &SlugCheck[models.Subcategory]{Available: true}, nil
		}
		return nil, err
	}
	if excludeID != nil && existing.ID == *excludeID {
		return &SlugCheck[models.Subcategory]{Available: true, Existing: &existing}, nil
	}
	return &SlugCheck[models.Subcategory]{Available: false, Existing: &existing}, nil
}

func (s *subcategoryService) Reorder(ctx context.Context, actorID, categoryID uuid.UUID, updates []repository.SortOrderUpdate) error {
	logger.L().Info("reorder subcategories", zap.String("category_id", categoryID.String()), zap.Int("count", len(updates)))

	if err := s.subcategoryRepo.Reorder(ctx, updates); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "subcategory.reorder", "subcategory", nil, map[string]any{
		"category_id": categoryID.String(),
		"count":       len(updates),
	})
	return nil
}

func (s *subcategoryService) Batch(ctx context.Context, actorID uuid.UUID, input *SubcategoryBatchInput) (*BatchResult, error) {
	logger.L().Info("batch subcategories", zap.String("operation", string(input.Operation)), zap.Int("count", len(input.IDs)))

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
		if input.TargetCategoryID == nil {
			return nil, appErr.New(appErr.CodeValidation, "target category required for batch move")
		}
		fn = func(id uuid.UUID) error { return s.move(ctx, id, *input.TargetCategoryID) }
	default:
		return nil, appErr.New(appErr.CodeValidation, "unknown batch operation")
	}

	res := runBatch(input.IDs, input.Operation, fn)

	recordAudit(ctx, s.auditRepo, actorID, "subcategory.batch."+string(input.Operation), "subcategory", nil, map[string]any{
		"processed":  res.Processed,
		"successful": res.Successful,
		"failed":     res.Failed,
	})
	return res, nil
}

func (s *subcategoryService) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	var sc models.Subcategory
	if err := s.subcategoryRepo.GetByID(ctx, id, &sc); err != nil {
		return err
	}
	sc.IsActive = active
	return s.subcategoryRepo.Update(ctx, &sc)
}

func (s *subcategoryService) move(ctx context.Context, id, targetCategoryID uuid.UUID) error {
	var sc models.Subcategory
	if err := s.subcategoryRepo.GetByID(ctx, id, &sc); err != nil {
		return err
	}
	sc.CategoryID = targetCategoryID
	if err := s.subcategoryRepo.Update(ctx, &sc); err != nil {
		return mapWriteError(err, "subcategory slug already in use under target category")
	}
	return nil
}

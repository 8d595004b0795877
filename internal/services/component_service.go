package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/platform"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"github.com/ona-ui/catalog/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ComponentService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *CreateComponentInput) (*models.Component, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Component, error)
	List(ctx context.Context, opts repository.PageOptions, f repository.ComponentFilters) (*repository.Page[models.Component], error)
	ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]models.Component, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateComponentInput) (*models.Component, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	CheckSlug(ctx context.Context, subcategoryID uuid.UUID, slug string, excludeID *uuid.UUID) (*SlugCheck[models.Component], error)
	Reorder(ctx context.Context, actorID, subcategoryID uuid.UUID, updates []repository.SortOrderUpdate) error
	Batch(ctx context.Context, actorID uuid.UUID, input *ComponentBatchInput) (*BatchResult, error)
	RecordView(ctx context.Context, id uuid.UUID) error
	RecordCopy(ctx context.Context, id uuid.UUID) error
	SetPreviewImage(ctx context.Context, actorID, id uuid.UUID, filename string, data []byte) (*models.Component, error)
}

type CreateComponentInput struct {
	SubcategoryID uuid.UUID
	Name          string
	Slug          string
	Description   string
	IsFree        bool
	RequiredTier  models.LicenseTier
	AccessType    string
	Status        models.ComponentStatus
	IsFeatured    bool
	IsNew         bool
	Tags          []string
	SortOrder     int
}

type UpdateComponentInput struct {
	Name         *string
	Slug         *string
	Description  *string
	IsFree       *bool
	RequiredTier *models.LicenseTier
	AccessType   *string
	Status       *models.ComponentStatus
	IsFeatured   *bool
	IsNew        *bool
	Tags         []string
	SortOrder    *int
	IsActive     *bool
}

type ComponentBatchInput struct {
	Operation           BatchOperation
	IDs                 []uuid.UUID
	Update              *UpdateComponentInput
	TargetSubcategoryID *uuid.UUID
}

type componentService struct {
	componentRepo repository.ComponentRepository
	auditRepo     repository.AuditRepository
	files         platform.FileStore
}

func NewComponentService(componentRepo repository.ComponentRepository, auditRepo repository.AuditRepository, files platform.FileStore) ComponentService {
	return &componentService{componentRepo: componentRepo, auditRepo: auditRepo, files: files}
}

var _ ComponentService = (*componentService)(nil)

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeValidation, "invalid tags")
	}
	return datatypes.JSON(b), nil
}

func (s *componentService) Create(ctx context.Context, actorID uuid.UUID, input *CreateComponentInput) (*models.Component, error) {
	logger.L().Info("create component", zap.String("subcategory_id", input.SubcategoryID.String()), zap.String("slug", input.Slug))

	tags, err := marshalTags(input.Tags)
	if err != nil {
		return nil, err
	}

	c := &models.Component{
		SubcategoryID: input.SubcategoryID,
		Name:          input.Name,
		Slug:          input.Slug,
		Description:   input.Description,
		IsFree:        input.IsFree,
		RequiredTier:  input.RequiredTier,
		AccessType:    input.AccessType,
		Status:        input.Status,
		IsFeatured:    input.IsFeatured,
		IsNew:         input.IsNew,
		Tags:          tags,
		SortOrder:     input.SortOrder,
		IsActive:      true,
	}
	if c.RequiredTier == "" {
		c.RequiredTier = models.TierFree
	}
	if c.Status == "" {
		c.Status = models.StatusDraft
	}
	if c.AccessType == "" {
		c.AccessType = "preview_only"
	}

	if err := s.componentRepo.Create(ctx, c); err != nil {
		return nil, mapWriteError(err, "component slug already in use under this subcategory")
	}

	recordAudit(ctx, s.auditRepo, actorID, "component.create", "component", &c.ID, map[string]any{"slug": c.Slug})
	return c, nil
}

// Get returns the component with its conversion rate derived from the
// counters; the stored column is only a periodically refreshed snapshot.
func (s *componentService) Get(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	var c models.Component
	if err := s.componentRepo.GetByID(ctx, id, &c); err != nil {
		return nil, err
	}
	if c.ViewCount > 0 {
		c.ConversionRate = float64(c.CopyCount) / float64(c.ViewCount)
	}
	return &c, nil
}

func (s *componentService) List(ctx context.Context, opts repository.PageOptions, f repository.ComponentFilters) (*repository.Page[models.Component], error) {
	return s.componentRepo.Paginate(ctx, opts, f)
}

func (s *componentService) ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]models.Component, error) {
	return s.componentRepo.ListBySubcategory(ctx, subcategoryID)
}

func (s *componentService) Update(ctx context.Context, actorID, id uuid.UUID, input *UpdateComponentInput) (*models.Component, error) {
	var c models.Component
	if err := s.componentRepo.GetByID(ctx, id, &c); err != nil {
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
	if input.IsFree != nil {
		c.IsFree = *input.IsFree
	}
	if input.RequiredTier != nil {
		c.RequiredTier = *input.RequiredTier
	}
	if input.AccessType != nil {
		c.AccessType = *input.AccessType
	}
	if input.Status != nil {
		c.Status = *input.Status
	}
	if input.IsFeatured != nil {
		c.IsFeatured = *input.IsFeatured
	}
	if input.IsNew != nil {
		c.IsNew = *input.IsNew
	}
	if input.Tags != nil {
		tags, err := marshalTags(input.Tags)
		if err != nil {
			return nil, err
		}
		c.Tags = tags
	}
	if input.SortOrder != nil {
		c.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}

	if err := s.componentRepo.Update(ctx, &c); err != nil {
		return nil, mapWriteError(err, "component slug already in use under this subcategory")
	}

	recordAudit(ctx, s.auditRepo, actorID, "component.update", "component", &id, nil)
	return &c, nil
}

// Delete refuses to remove a component that still has versions.
func (s *componentService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	var c models.Component
	if err := s.componentRepo.GetByID(ctx, id, &c); err != nil {
		return err
	}

	n, err := s.componentRepo.CountVersions(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return appErr.New(appErr.CodeConflict, "component has versions").WithMeta("version_count", n)
	}

	if err := s.componentRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "component.delete", "component", &id, map[string]any{"slug": c.Slug})
	return nil
}

func (s *componentService) CheckSlug(ctx context.Context, subcategoryID uuid.UUID, slug string, excludeID *uuid.UUID) (*SlugCheck[models.Component], error) {
	var existing models.Component
	err := s.componentRepo.GetBySlug(ctx, subcategoryID, slug, &existing)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return &SlugCheck[models.Component]{Available: true}, nil
		}
		return nil, err
	}
	if excludeID != nil && existing.ID == *excludeID {
		return &SlugCheck[models.Component]{Available: true, Existing: &existing}, nil
	}
	return &SlugCheck[models.Component]{Available: false, Existing: &existing}, nil
}

func (s *componentService) Reorder(ctx context.Context, actorID, subcategoryID uuid.UUID, updates []repository.SortOrderUpdate) error {
	logger.L().Info("reorder components", zap.String("subcategory_id", subcategoryID.String()), zap.Int("count", len(updates)))

	if err := s.componentRepo.Reorder(ctx, updates); err != nil {
		return err
	}

	recordAudit(ctx, s.auditRepo, actorID, "component.reorder", "component", nil, map[string]any{
		"subcategory_id": subcategoryID.String(),
		"count":          len(updates),
	})
	return nil
}

func (s *componentService) Batch(ctx context.Context, actorID uuid.UUID, input *ComponentBatchInput) (*BatchResult, error) {
	logger.L().Info("batch components", zap.String("operation", string(input.Operation)), zap.Int("count", len(input.IDs)))

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
		if input.TargetSubcategoryID == nil {
			return nil, appErr.New(appErr.CodeValidation, "target subcategory required for batch move")
		}
		fn = func(id uuid.UUID) error { return s.move(ctx, id, *input.TargetSubcategoryID) }
	default:
		return nil, appErr.New(appErr.CodeValidation, "unknown batch operation")
	}

	res := runBatch(input.IDs, input.Operation, fn)

	recordAudit(ctx, s.auditRepo, actorID, "component.batch."+string(input.Operation), "component", nil, map[string]any{
		"processed":  res.Processed,
		"successful": res.Successful,
		"failed":     res.Failed,
	})
	return res, nil
}

func (s *componentService) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	var c models.Component
	if err := s.componentRepo.GetByID(ctx, id, &c); err != nil {
		return err
	}
	c.IsActive = active
	return s.componentRepo.Update(ctx, &c)
}

func (s *componentService) move(ctx context.Context, id, targetSubcategoryID uuid.UUID) error {
	var c models.Component
	if err := s.componentRepo.GetByID(ctx, id, &c); err != nil {
		return err
	}
	c.SubcategoryID = targetSubcategoryID
	if err := s.componentRepo.Update(ctx, &c); err != nil {
		return mapWriteError(err, "component slug already in use under target subcategory")
	}
	return nil
}

func (s *componentService) RecordView(ctx context.Context, id uuid.UUID) error {
	return s.componentRepo.IncrementViewCount(ctx, id)
}

func (s *componentService) RecordCopy(ctx context.Context, id uuid.UUID) error {
	return s.componentRepo.IncrementCopyCount(ctx, id)
}

// SetPreviewImage stores the image and points the component at its URL.
func (s *componentService) SetPreviewImage(ctx context.Context, actorID, id uuid.UUID, filename string, data []byte) (*models.Component, error) {
	var c models.Component
	if err := s.componentRepo.GetByID(ctx, id, &c); err != nil {
		return nil, err
	}

	res, err := s.files.UploadImage(ctx, filename, data)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeValidation, "preview image rejected")
	}

	c.PreviewImageURL = res.URL
	if err := s.componentRepo.Update(ctx, &c); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.auditRepo, actorID, "component.preview_image", "component", &id, map[string]any{"key": res.Key})
	return &c, nil
}

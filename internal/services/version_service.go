package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"github.com/ona-ui/catalog/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type VersionService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *CreateVersionInput) (*models.ComponentVersion, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ComponentVersion, error)
	ListByComponent(ctx context.Context, componentID uuid.UUID) ([]models.ComponentVersion, error)
	GetVariant(ctx context.Context, componentID uuid.UUID, framework, cssFramework, versionNumber string) (*models.ComponentVersion, error)
	GetDefault(ctx context.Context, componentID uuid.UUID) (*models.ComponentVersion, error)
	SetDefault(ctx context.Context, actorID, componentID, versionID uuid.UUID) error
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type CreateVersionInput struct {
	ComponentID   uuid.UUID
	Framework     string
	CSSFramework  string
	VersionNumber string
	CodePreview   string
	CodeFull      string
	Dependencies  map[string]any
	Integrations  map[string]any
	IsDefault     bool
}

type versionService struct {
	versionRepo repository.VersionRepository
	auditRepo   repository.AuditRepository
}

func NewVersionService(versionRepo repository.VersionRepository, auditRepo repository.AuditRepository) VersionService {
	return &versionService{versionRepo: versionRepo, auditRepo: auditRepo}
}

var _ VersionService = (*versionService)(nil)

func marshalMeta(m map[string]any, what string) (datatypes.JSON, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeValidation, "invalid "+what)
	}
	return datatypes.JSON(b), nil
}

func (s *versionService) Create(ctx context.Context, actorID uuid.UUID, input *CreateVersionInput) (*models.ComponentVersion, error) {
	logger.L().Info("create version",
		zap.String("component_id", input.ComponentID.String()),
		zap.String("framework", input.Framework),
		zap.String("version", input.VersionNumber),
	)

	deps, err := marshalMeta(input.Dependencies, "dependencies")
	if err != nil {
		return nil, err
	}
	ints, err := marshalMeta(input.Integrations, "integrations")
	if err != nil {
		return nil, err
	}

	v := &models.ComponentVersion{
		ComponentID:   input.ComponentID,
		Framework:     input.Framework,
		CSSFramework:  input.CSSFramework,
		VersionNumber: input.VersionNumber,
		CodePreview:   input.CodePreview,
		CodeFull:      input.CodeFull,
		Dependencies:  deps,
		Integrations:  ints,
	}

	if err := s.versionRepo.Create(ctx, v); err != nil {
		return nil, mapWriteError(err, "version already exists for this framework/css/version combination")
	}

	// Promotion goes through the same transaction as any later default swap
	// so the at-most-one invariant is never bypassed on create.
	if input.IsDefault {
		if err := s.versionRepo.SetDefault(ctx, input.ComponentID, v.ID); err != nil {
			return nil, err
		}
		v.IsDefault = true
	}

	recordAudit(ctx, s.auditRepo, actorID, "version.create", "component_version", &v.ID, map[string]any{
		"component_id": input.ComponentID.String(),
		"framework":    input.Framework,
		"version":      input.VersionNumber,
	})
	return v, nil
}

func (s *versionService) Get(ctx context.Context, id uuid.UUID) (*models.ComponentVersion, error) {
	var v models.ComponentVersion
	if err := s.versionRepo.GetByID(ctx, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *versionService) ListByComponent(ctx context.Context, componentID uuid.UUID) ([]models.ComponentVersion, error) {
	return s.versionRepo.ListByComponent(ctx, componentID)
}

func (s *versionService) GetVariant(ctx context.Context, componentID uuid.UUID, framework, cssFramework, versionNumber string) (*models.ComponentVersion, error) {
	var v models.ComponentVersion
	if err := s.versionRepo.GetVariant(ctx, componentID, framework, cssFramework, versionNumber, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *versionService) GetDefault(ctx context.Context, componentID uuid.UUID) (*models.ComponentVersion, error) {
	var v models.ComponentVersion
	if err := s.versionRepo.GetDefault(ctx, componentID, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *versionService) SetDefault(ctx context.Context, actorID, componentID, versionID uuid.UUID) error {
	if err := s.versionRepo.SetDefault(ctx, componentID, versionID); err != nil {
		return err
	}
	recordAudit(ctx, s.auditRepo, actorID, "version.set_default", "component_version", &versionID, map[string]any{
		"component_id": componentID.String(),
	})
	return nil
}

func (s *versionService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.versionRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.auditRepo, actorID, "version.delete", "component_version", &id, nil)
	return nil
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/platform"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type mockComponentRepository struct {
	mock.Mock
}

func (m *mockComponentRepository) Create(ctx context.Context, obj *models.Component) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockComponentRepository) GetByID(ctx context.Context, id any, dest *models.Component) error {
	args := m.Called(ctx, id, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.Component)
		*dest = *src
	}
	return args.Error(0)
}

func (m *mockComponentRepository) Update(ctx context.Context, obj *models.Component) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockComponentRepository) Delete(ctx context.Context, id any) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockComponentRepository) GetBySlug(ctx context.Context, subcategoryID uuid.UUID, slug string, dest *models.Component) error {
	args := m.Called(ctx, subcategoryID, slug, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.Component)
		*dest = *src
	}
	return args.Error(0)
}

func (m *mockComponentRepository) ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]models.Component, error) {
	args := m.Called(ctx, subcategoryID)
	if v := args.Get(0); v != nil {
		return v.([]models.Component), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockComponentRepository) Paginate(ctx context.Context, opts repository.PageOptions, f repository.ComponentFilters) (*repository.Page[models.Component], error) {
	args := m.Called(ctx, opts, f)
	if v := args.Get(0); v != nil {
		return v.(*repository.Page[models.Component]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockComponentRepository) Reorder(ctx context.Context, updates []repository.SortOrderUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *mockComponentRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockComponentRepository) IncrementCopyCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockComponentRepository) CountVersions(ctx context.Context, componentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, componentID)
	return args.Get(0).(int64), args.Error(1)
}

type mockFileStore struct {
	mock.Mock
}

func (m *mockFileStore) UploadImage(ctx context.Context, name string, data []byte) (*platform.UploadResult, error) {
	args := m.Called(ctx, name, data)
	if v := args.Get(0); v != nil {
		return v.(*platform.UploadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestComponentService_CreateAppliesDefaults(t *testing.T) {
	repo := &mockComponentRepository{}
	audit := &mockAuditRepository{}
	svc := NewComponentService(repo, audit, &mockFileStore{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Component) bool {
		return c.RequiredTier == models.TierFree &&
			c.Status == models.StatusDraft &&
			c.AccessType == "preview_only" &&
			c.IsActive
	})).Return(nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.Create(context.Background(), uuid.New(), &CreateComponentInput{
		SubcategoryID: uuid.New(),
		Name:          "Pricing Table",
		Slug:          "pricing-table",
		Tags:          []string{"pricing", "table"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `["pricing","table"]`, string(c.Tags))
	repo.AssertExpectations(t)
}

func TestComponentService_GetDerivesConversionRate(t *testing.T) {
	repo := &mockComponentRepository{}
	svc := NewComponentService(repo, &mockAuditRepository{}, &mockFileStore{})

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id, mock.Anything).
		Return(nil, &models.Component{ID: id, ViewCount: 200, CopyCount: 50})

	c, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.InDelta(t, 0.25, c.ConversionRate, 1e-9)
}

func TestComponentService_DeleteGuardsVersions(t *testing.T) {
	repo := &mockComponentRepository{}
	svc := NewComponentService(repo, &mockAuditRepository{}, &mockFileStore{})

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id, mock.Anything).
		Return(nil, &models.Component{ID: id, Slug: "hero"})
	repo.On("CountVersions", mock.Anything, id).Return(int64(2), nil)

	err := svc.Delete(context.Background(), uuid.New(), id)
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
	repo.AssertNotCalled(t, "Delete", mock.Anything, id)
}

func TestComponentService_SetPreviewImage(t *testing.T) {
	repo := &mockComponentRepository{}
	files := &mockFileStore{}
	audit := &mockAuditRepository{}
	svc := NewComponentService(repo, audit, files)

	id := uuid.New()
	data := []byte{0x89, 0x50, 0x4e, 0x47}
	repo.On("GetByID", mock.Anything, id, mock.Anything).
		Return(nil, &models.Component{ID: id, Slug: "hero"})
	files.On("UploadImage", mock.Anything, "hero.png", data).
		Return(&platform.UploadResult{URL: "http://localhost:8080/uploads/abc.png", Key: "abc.png"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Component) bool {
		return c.PreviewImageURL == "http://localhost:8080/uploads/abc.png"
	})).Return(nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.SetPreviewImage(context.Background(), uuid.New(), id, "hero.png", data)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/uploads/abc.png", c.PreviewImageURL)
	repo.AssertExpectations(t)
	files.AssertExpectations(t)
}

func TestComponentService_SetPreviewImageRejectsBadUpload(t *testing.T) {
	repo := &mockComponentRepository{}
	files := &mockFileStore{}
	svc := NewComponentService(repo, &mockAuditRepository{}, files)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id, mock.Anything).
		Return(nil, &models.Component{ID: id})
	files.On("UploadImage", mock.Anything, "notes.txt", mock.Anything).
		Return(nil, appErr.New(appErr.CodeValidation, "unsupported image extension"))

	_, err := svc.SetPreviewImage(context.Background(), uuid.New(), id, "notes.txt", []byte("x"))
	require.True(t, appErr.IsCode(err, appErr.CodeValidation))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestComponentService_RecordCounters(t *testing.T) {
	repo := &mockComponentRepository{}
	svc := NewComponentService(repo, &mockAuditRepository{}, &mockFileStore{})

	id := uuid.New()
	repo.On("IncrementViewCount", mock.Anything, id).Return(nil)
	repo.On("IncrementCopyCount", mock.Anything, id).Return(nil)

	require.NoError(t, svc.RecordView(context.Background(), id))
	require.NoError(t, svc.RecordCopy(context.Background(), id))
	repo.AssertExpectations(t)
}

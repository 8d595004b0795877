package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"github.com/ona-ui/catalog/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests (required by services)
	_, err := logger.Init("info", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// Mock implementations
type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, obj *models.Category) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id any, dest *models.Category) error {
	args := m.Called(ctx, id, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.Category)
		*dest = *src
	}
	return args.Error(0)
}

func (m *mockCategoryRepository) Update(ctx context.Context, obj *models.Category) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id any) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetBySlug(ctx context.Context, productID uuid.UUID, slug string, dest *models.Category) error {
	args := m.Called(ctx, productID, slug, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.Category)
		*dest = *src
	}
	return args.Error(0)
}

func (m *mockCategoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Category, error) {
	args := m.Called(ctx, productID)
	if v := args.Get(0); v != nil {
		return v.([]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepository) Paginate(ctx context.Context, opts repository.PageOptions, f repository.CategoryFilters) (*repository.Page[models.Category], error) {
	args := m.Called(ctx, opts, f)
	if v := args.Get(0); v != nil {
		return v.(*repository.Page[models.Category]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepository) Reorder(ctx context.Context, updates []repository.SortOrderUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *mockCategoryRepository) CountSubcategories(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryRepository) StatsByProduct(ctx context.Context, productID uuid.UUID) ([]repository.CategoryStats, error) {
	args := m.Called(ctx, productID)
	if v := args.Get(0); v != nil {
		return v.([]repository.CategoryStats), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	args := m.Called(ctx, entityType, entityID, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.AuditEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCategoryService_CreateDefaultsActive(t *testing.T) {
	repo := &mockCategoryRepository{}
	audit := &mockAuditRepository{}
	svc := NewCategoryService(repo, audit)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.IsActive && c.Slug == "buttons"
	})).Return(nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.Create(context.Background(), uuid.New(), &CreateCategoryInput{
		ProductID: uuid.New(),
		Name:      "Buttons",
		Slug:      "buttons",
	})
	require.NoError(t, err)
	require.True(t, c.IsActive)
	repo.AssertExpectations(t)
}

func TestCategoryService_CheckSlug(t *testing.T) {
	productID := uuid.New()
	existingID := uuid.New()

	t.Run("not found means available", func(t *testing.T) {
		repo := &mockCategoryRepository{}
		svc := NewCategoryService(repo, &mockAuditRepository{})

		repo.On("GetBySlug", mock.Anything, productID, "hero", mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "entity not found"), nil)

		check, err := svc.CheckSlug(context.Background(), productID, "hero", nil)
		require.NoError(t, err)
		require.True(t, check.Available)
		require.Nil(t, check.Existing)
	})

	t.Run("taken by another category", func(t *testing.T) {
		repo := &mockCategoryRepository{}
		svc := NewCategoryService(repo, &mockAuditRepository{})

		repo.On("GetBySlug", mock.Anything, productID, "hero", mock.Anything).
			Return(nil, &models.Category{ID: existingID, Slug: "hero"})

		check, err := svc.CheckSlug(context.Background(), productID, "hero", nil)
		require.NoError(t, err)
		require.False(t, check.Available)
		require.NotNil(t, check.Existing)
		require.Equal(t, existingID, check.Existing.ID)
	})

	t.Run("excluded id keeps its own slug", func(t *testing.T) {
		repo := &mockCategoryRepository{}
		svc := NewCategoryService(repo, &mockAuditRepository{})

		repo.On("GetBySlug", mock.Anything, productID, "hero", mock.Anything).
			Return(nil, &models.Category{ID: existingID, Slug: "hero"})

		check, err := svc.CheckSlug(context.Background(), productID, "hero", &existingID)
		require.NoError(t, err)
		require.True(t, check.Available)
	})
}

func TestCategoryService_DeleteGuardsChildren(t *testing.T) {
	repo := &mockCategoryRepository{}
	audit := &mockAuditRepository{}
	svc := NewCategoryService(repo, audit)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id, mock.Anything).
		Return(nil, &models.Category{ID: id, Slug: "hero"})
	repo.On("CountSubcategories", mock.Anything, id).Return(int64(3), nil)

	err := svc.Delete(context.Background(), uuid.New(), id)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
	repo.AssertNotCalled(t, "Delete", mock.Anything, id)
}

func TestCategoryService_DeleteEmptyCategory(t *testing.T) {
	repo := &mockCategoryRepository{}
	audit := &mockAuditRepository{}
	svc := NewCategoryService(repo, audit)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id, mock.Anything).
		Return(nil, &models.Category{ID: id, Slug: "hero"})
	repo.On("CountSubcategories", mock.Anything, id).Return(int64(0), nil)
	repo.On("Delete", mock.Anything, id).Return(nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	err := svc.Delete(context.Background(), uuid.New(), id)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCategoryService_BatchBestEffort(t *testing.T) {
	repo := &mockCategoryRepository{}
	audit := &mockAuditRepository{}
	svc := NewCategoryService(repo, audit)

	okID := uuid.New()
	missingID := uuid.New()

	repo.On("GetByID", mock.Anything, okID, mock.Anything).
		Return(nil, &models.Category{ID: okID, IsActive: false})
	repo.On("GetByID", mock.Anything, missingID, mock.Anything).
		Return(appErr.New(appErr.CodeNotFound, "entity not found"), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.ID == okID && c.IsActive
	})).Return(nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Batch(context.Background(), uuid.New(), &CategoryBatchInput{
		Operation: BatchActivate,
		IDs:       []uuid.UUID{okID, missingID},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Processed)
	require.Equal(t, 1, res.Successful)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	require.Equal(t, missingID, res.Errors[0].ID)
	require.Equal(t, string(appErr.CodeNotFound), res.Errors[0].Code)
}

func TestCategoryService_BatchValidatesInput(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepository{}, &mockAuditRepository{})

	_, err := svc.Batch(context.Background(), uuid.New(), &CategoryBatchInput{
		Operation: BatchUpdate,
		IDs:       []uuid.UUID{uuid.New()},
	})
	require.True(t, appErr.IsCode(err, appErr.CodeValidation))

	_, err = svc.Batch(context.Background(), uuid.New(), &CategoryBatchInput{
		Operation: BatchMove,
		IDs:       []uuid.UUID{uuid.New()},
	})
	require.True(t, appErr.IsCode(err, appErr.CodeValidation))
}

func TestCategoryService_ReorderAuditsOnce(t *testing.T) {
	repo := &mockCategoryRepository{}
	audit := &mockAuditRepository{}
	svc := NewCategoryService(repo, audit)

	updates := []repository.SortOrderUpdate{
		{ID: uuid.New(), SortOrder: 0},
		{ID: uuid.New(), SortOrder: 1},
	}
	repo.On("Reorder", mock.Anything, updates).Return(nil)
	audit.On("Append", mock.Anything, mock.MatchedBy(func(e *models.AuditEntry) bool {
		return e.Action == "category.reorder"
	})).Return(nil)

	err := svc.Reorder(context.Background(), uuid.New(), uuid.New(), updates)
	require.NoError(t, err)
	audit.AssertNumberOfCalls(t, "Append", 1)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ona-ui/catalog/internal/api/middleware"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/api/validators"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	"github.com/ona-ui/catalog/internal/services"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"github.com/ona-ui/catalog/pkg/logger"
)

func TestMain(m *testing.M) {
	_, err := logger.Init("info", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) Create(ctx context.Context, actorID uuid.UUID, input *services.CreateCategoryInput) (*models.Category, error) {
	args := m.Called(ctx, actorID, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) List(ctx context.Context, opts repository.PageOptions, f repository.CategoryFilters) (*repository.Page[models.Category], error) {
	args := m.Called(ctx, opts, f)
	if v := args.Get(0); v != nil {
		return v.(*repository.Page[models.Category]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Category, error) {
	args := m.Called(ctx, productID)
	if v := args.Get(0); v != nil {
		return v.([]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, actorID, id uuid.UUID, input *services.UpdateCategoryInput) (*models.Category, error) {
	args := m.Called(ctx, actorID, id, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}

func (m *mockCategoryService) CheckSlug(ctx context.Context, productID uuid.UUID, slug string, excludeID *uuid.UUID) (*services.SlugCheck[models.Category], error) {
	args := m.Called(ctx, productID, slug, excludeID)
	if v := args.Get(0); v != nil {
		return v.(*services.SlugCheck[models.Category]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) Reorder(ctx context.Context, actorID, productID uuid.UUID, updates []repository.SortOrderUpdate) error {
	args := m.Called(ctx, actorID, productID, updates)
	return args.Error(0)
}

func (m *mockCategoryService) Batch(ctx context.Context, actorID uuid.UUID, input *services.CategoryBatchInput) (*services.BatchResult, error) {
	args := m.Called(ctx, actorID, input)
	if v := args.Get(0); v != nil {
		return v.(*services.BatchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) Stats(ctx context.Context, productID uuid.UUID) ([]repository.CategoryStats, error) {
	args := m.Called(ctx, productID)
	if v := args.Get(0); v != nil {
		return v.([]repository.CategoryStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func adminRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	sess := &services.Session{UserID: uuid.New(), IsAdmin: true}
	return req.WithContext(middleware.WithSession(req.Context(), sess))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) types.APIResponse {
	t.Helper()
	var env types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func newCategoriesHandlerForTest(svc services.CategoryService) *CategoriesHandler {
	return NewCategoriesHandler(svc, nil, validators.New())
}

func TestCategoriesHandler_ListRejectsUnknownSortField(t *testing.T) {
	svc := &mockCategoryService{}
	h := newCategoriesHandlerForTest(svc)

	rr := httptest.NewRecorder()
	h.List(rr, adminRequest(t, http.MethodGet, "/categories?sortBy=view_count", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	env := decodeEnvelope(t, rr)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	svc.AssertNotCalled(t, "List")
}

func TestCategoriesHandler_ListRejectsBadSortOrder(t *testing.T) {
	svc := &mockCategoryService{}
	h := newCategoriesHandlerForTest(svc)

	rr := httptest.NewRecorder()
	h.List(rr, adminRequest(t, http.MethodGet, "/categories?sortOrder=sideways", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "List")
}

func TestCategoriesHandler_CreateValidation(t *testing.T) {
	h := newCategoriesHandlerForTest(&mockCategoryService{})

	body := []byte(`{"productId":"` + uuid.NewString() + `","name":"Hero","slug":"Not A Slug"}`)
	rr := httptest.NewRecorder()
	h.Create(rr, adminRequest(t, http.MethodPost, "/categories", body))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	env := decodeEnvelope(t, rr)
	require.False(t, env.Success)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestCategoriesHandler_CreateBadJSON(t *testing.T) {
	h := newCategoriesHandlerForTest(&mockCategoryService{})

	rr := httptest.NewRecorder()
	h.Create(rr, adminRequest(t, http.MethodPost, "/categories", []byte(`{not-json`)))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCategoriesHandler_DeleteConflict(t *testing.T) {
	svc := &mockCategoryService{}
	h := newCategoriesHandlerForTest(svc)

	id := uuid.New()
	svc.On("Delete", mock.Anything, mock.Anything, id).
		Return(appErr.New(appErr.CodeConflict, "category has subcategories").WithMeta("subcategory_count", int64(2)))

	req := adminRequest(t, http.MethodDelete, "/categories/"+id.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	env := decodeEnvelope(t, rr)
	require.Equal(t, "CONFLICT", env.Error.Code)
	require.NotNil(t, env.Error.Details)
}

func TestCategoriesHandler_GetNotFound(t *testing.T) {
	svc := &mockCategoryService{}
	h := newCategoriesHandlerForTest(svc)

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, appErr.New(appErr.CodeNotFound, "entity not found"))

	req := adminRequest(t, http.MethodGet, "/categories/"+id.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Get(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "NOT_FOUND", decodeEnvelope(t, rr).Error.Code)
}

func TestCategoriesHandler_CreateSuccessEnvelope(t *testing.T) {
	svc := &mockCategoryService{}
	h := newCategoriesHandlerForTest(svc)

	productID := uuid.New()
	created := &models.Category{ID: uuid.New(), ProductID: productID, Name: "Hero", Slug: "hero", IsActive: true}
	svc.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(in *services.CreateCategoryInput) bool {
		return in.ProductID == productID && in.Slug == "hero"
	})).Return(created, nil)

	body := []byte(`{"productId":"` + productID.String() + `","name":"Hero","slug":"hero"}`)
	rr := httptest.NewRecorder()
	h.Create(rr, adminRequest(t, http.MethodPost, "/categories", body))

	require.Equal(t, http.StatusCreated, rr.Code)
	env := decodeEnvelope(t, rr)
	require.True(t, env.Success)
	require.Nil(t, env.Error)
	require.False(t, env.Timestamp.IsZero())
}

func TestCategoriesHandler_BatchAlwaysOK(t *testing.T) {
	svc := &mockCategoryService{}
	h := newCategoriesHandlerForTest(svc)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	svc.On("Batch", mock.Anything, mock.Anything, mock.MatchedBy(func(in *services.CategoryBatchInput) bool {
		return in.Operation == services.BatchDeactivate && len(in.IDs) == 2
	})).Return(&services.BatchResult{Processed: 2, Successful: 1, Failed: 1,
		Results: []services.BatchItemResult{{ID: ids[0], Status: "deactivated"}},
		Errors:  []services.BatchItemError{{ID: ids[1], Code: "NOT_FOUND", Message: "entity not found"}},
	}, nil)

	body, err := json.Marshal(types.CategoryBatchRequest{
		Operation:   "deactivate",
		CategoryIDs: []string{ids[0].String(), ids[1].String()},
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.Batch(rr, adminRequest(t, http.MethodPost, "/categories/batch", body))

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	require.True(t, env.Success)
}

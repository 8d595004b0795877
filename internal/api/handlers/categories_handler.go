package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/api/middleware"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/repository"
	"github.com/ona-ui/catalog/internal/services"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type CategoriesHandler struct {
	categories services.CategoryService
	products   services.ProductService
	validate   *validator.Validate
}

func NewCategoriesHandler(categories services.CategoryService, products services.ProductService, v *validator.Validate) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, products: products, validate: v}
}

// ListByProductSlug serves the public navigation tree for one product.
func (h *CategoriesHandler) ListByProductSlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.categories.ListByProduct(r.Context(), p.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID, err := optUUID(q, "productId")
	if err != nil {
		respondError(w, err)
		return
	}
	opts, err := pageOptions(q, h.validate)
	if err != nil {
		respondValidation(w, err)
		return
	}
	f := repository.CategoryFilters{
		ProductID: productID,
		IsActive:  optBool(q, "isActive"),
		Search:    q.Get("search"),
	}
	page, err := h.categories.List(r.Context(), opts, f)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, page)
}

func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, c)
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid productId"))
		return
	}

	sess := middleware.GetSession(r.Context())
	c, err := h.categories.Create(r.Context(), sess.UserID, &services.CreateCategoryInput{
		ProductID:   productID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IconName:    req.IconName,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, c)
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req types.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	c, err := h.categories.Update(r.Context(), sess.UserID, id, updateCategoryInput(&req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, c)
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.categories.Delete(r.Context(), sess.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "category deleted")
}

func (h *CategoriesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req types.CategoryReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid productId"))
		return
	}
	updates, err := parseReorderItems(req.Categories)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	if err := h.categories.Reorder(r.Context(), sess.UserID, productID, updates); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "categories reordered")
}

func (h *CategoriesHandler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	var req types.CategoryCheckSlugRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid productId"))
		return
	}
	excludeID, err := optUUIDFromString(req.ExcludeID)
	if err != nil {
		respondError(w, err)
		return
	}

	check, err := h.categories.CheckSlug(r.Context(), productID, req.Slug, excludeID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, check)
}

// Batch always answers 200 with the per-item breakdown; item failures never
// fail the call.
func (h *CategoriesHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req types.CategoryBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	ids, err := parseIDList(req.CategoryIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	targetProductID, err := optUUIDFromString(req.TargetProductID)
	if err != nil {
		respondError(w, err)
		return
	}

	input := &services.CategoryBatchInput{
		Operation:       services.BatchOperation(req.Operation),
		IDs:             ids,
		TargetProductID: targetProductID,
	}
	if req.Data != nil {
		input.Update = updateCategoryInput(req.Data)
	}

	sess := middleware.GetSession(r.Context())
	res, err := h.categories.Batch(r.Context(), sess.UserID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, res)
}

func (h *CategoriesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	productID, err := optUUID(r.URL.Query(), "productId")
	if err != nil {
		respondError(w, err)
		return
	}
	if productID == nil {
		respondError(w, appErr.New(appErr.CodeValidation, "productId is required"))
		return
	}
	stats, err := h.categories.Stats(r.Context(), *productID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

func updateCategoryInput(req *types.UpdateCategoryRequest) *services.UpdateCategoryInput {
	return &services.UpdateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IconName:    req.IconName,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
}

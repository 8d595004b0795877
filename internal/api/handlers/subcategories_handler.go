package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/api/middleware"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/repository"
	"github.com/ona-ui/catalog/internal/services"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type SubcategoriesHandler struct {
	subcategories services.SubcategoryService
	validate      *validator.Validate
}

func NewSubcategoriesHandler(subcategories services.SubcategoryService, v *validator.Validate) *SubcategoriesHandler {
	return &SubcategoriesHandler{subcategories: subcategories, validate: v}
}

func (h *SubcategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, err := optUUID(q, "categoryId")
	if err != nil {
		respondError(w, err)
		return
	}
	opts, err := pageOptions(q, h.validate)
	if err != nil {
		respondValidation(w, err)
		return
	}
	f := repository.SubcategoryFilters{
		CategoryID: categoryID,
		IsActive:   optBool(q, "isActive"),
		Search:     q.Get("search"),
	}
	page, err := h.subcategories.List(r.Context(), opts, f)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, page)
}

func (h *SubcategoriesHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlID(r, "categoryId")
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.subcategories.ListByCategory(r.Context(), categoryID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}

func (h *SubcategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	sc, err := h.subcategories.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, sc)
}

func (h *SubcategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSubcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid categoryId"))
		return
	}

	sess := middleware.GetSession(r.Context())
	sc, err := h.subcategories.Create(r.Context(), sess.UserID, &services.CreateSubcategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, sc)
}

func (h *SubcategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req types.UpdateSubcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	sc, err := h.subcategories.Update(r.Context(), sess.UserID, id, updateSubcategoryInput(&req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, sc)
}

func (h *SubcategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.subcategories.Delete(r.Context(), sess.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "subcategory deleted")
}

func (h *SubcategoriesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req types.SubcategoryReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid categoryId"))
		return
	}
	updates, err := parseReorderItems(req.Subcategories)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	if err := h.subcategories.Reorder(r.Context(), sess.UserID, categoryID, updates); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "subcategories reordered")
}

func (h *SubcategoriesHandler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	var req types.SubcategoryCheckSlugRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid categoryId"))
		return
	}
	excludeID, err := optUUIDFromString(req.ExcludeID)
	if err != nil {
		respondError(w, err)
		return
	}

	check, err := h.subcategories.CheckSlug(r.Context(), categoryID, req.Slug, excludeID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, check)
}

func (h *SubcategoriesHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req types.SubcategoryBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	ids, err := parseIDList(req.SubcategoryIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	targetCategoryID, err := optUUIDFromString(req.TargetCategoryID)
	if err != nil {
		respondError(w, err)
		return
	}

	input := &services.SubcategoryBatchInput{
		Operation:        services.BatchOperation(req.Operation),
		IDs:              ids,
		TargetCategoryID: targetCategoryID,
	}
	if req.Data != nil {
		input.Update = updateSubcategoryInput(req.Data)
	}

	sess := middleware.GetSession(r.Context())
	res, err := h.subcategories.Batch(r.Context(), sess.UserID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, res)
}

func updateSubcategoryInput(req *types.UpdateSubcategoryRequest) *services.UpdateSubcategoryInput {
	return &services.UpdateSubcategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
}

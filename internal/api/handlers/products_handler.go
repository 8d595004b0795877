package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ona-ui/catalog/internal/api/middleware"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/services"
)

type ProductsHandler struct {
	products services.ProductService
	validate *validator.Validate
}

func NewProductsHandler(products services.ProductService, v *validator.Validate) *ProductsHandler {
	return &ProductsHandler{products: products, validate: v}
}

// ListPublic returns the active products in navigation order.
func (h *ProductsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.products.ListActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := pageOptions(r.URL.Query(), h.validate)
	if err != nil {
		respondValidation(w, err)
		return
	}
	page, err := h.products.List(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, page)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, p)
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	p, err := h.products.Create(r.Context(), sess.UserID, &services.CreateProductInput{
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
	respondCreated(w, p)
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req types.UpdateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	p, err := h.products.Update(r.Context(), sess.UserID, id, &services.UpdateProductInput{
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
	respondOK(w, p)
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.products.Delete(r.Context(), sess.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "product deleted")
}

func (h *ProductsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req types.ProductReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	updates, err := parseReorderItems(req.Products)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	if err := h.products.Reorder(r.Context(), sess.UserID, updates); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "products reordered")
}

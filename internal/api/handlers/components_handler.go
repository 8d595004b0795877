package handlers

import (
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/api/middleware"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	"github.com/ona-ui/catalog/internal/services"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

const maxUploadBytes = 5 << 20

type ComponentsHandler struct {
	components services.ComponentService
	versions   services.VersionService
	validate   *validator.Validate
}

func NewComponentsHandler(components services.ComponentService, versions services.VersionService, v *validator.Validate) *ComponentsHandler {
	return &ComponentsHandler{components: components, versions: versions, validate: v}
}

func componentFilters(q url.Values) (repository.ComponentFilters, error) {
	subcategoryID, err := optUUID(q, "subcategoryId")
	if err != nil {
		return repository.ComponentFilters{}, err
	}
	categoryID, err := optUUID(q, "categoryId")
	if err != nil {
		return repository.ComponentFilters{}, err
	}
	f := repository.ComponentFilters{
		SubcategoryID: subcategoryID,
		CategoryID:    categoryID,
		Framework:     q.Get("framework"),
		IsFree:        optBool(q, "isFree"),
		IsFeatured:    optBool(q, "isFeatured"),
		IsActive:      optBool(q, "isActive"),
		Search:        q.Get("search"),
	}
	if s := q.Get("status"); s != "" {
		st := models.ComponentStatus(s)
		switch st {
		case models.StatusDraft, models.StatusPublished, models.StatusArchived, models.StatusDeprecated:
		default:
			return repository.ComponentFilters{}, appErr.New(appErr.CodeValidation, "invalid status")
		}
		f.Status = &st
	}
	if t := q.Get("requiredTier"); t != "" {
		tier := models.LicenseTier(t)
		switch tier {
		case models.TierFree, models.TierPro, models.TierTeam, models.TierEnterprise:
		default:
			return repository.ComponentFilters{}, appErr.New(appErr.CodeValidation, "invalid requiredTier")
		}
		f.RequiredTier = &tier
	}
	return f, nil
}

func (h *ComponentsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := componentFilters(q)
	if err != nil {
		respondError(w, err)
		return
	}
	opts, err := pageOptions(q, h.validate)
	if err != nil {
		respondValidation(w, err)
		return
	}
	page, err := h.components.List(r.Context(), opts, f)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, page)
}

// ListPublic is the unauthenticated browse endpoint. Only published, active
// components are visible regardless of the query string.
func (h *ComponentsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := componentFilters(q)
	if err != nil {
		respondError(w, err)
		return
	}
	published := models.StatusPublished
	active := true
	f.Status = &published
	f.IsActive = &active

	opts, err := pageOptions(q, h.validate)
	if err != nil {
		respondValidation(w, err)
		return
	}
	page, err := h.components.List(r.Context(), opts, f)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, page)
}

func (h *ComponentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := h.components.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, c)
}

func (h *ComponentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateComponentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	subcategoryID, err := uuid.Parse(req.SubcategoryID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid subcategoryId"))
		return
	}

	input := &services.CreateComponentInput{
		SubcategoryID: subcategoryID,
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		IsFree:        req.IsFree,
		AccessType:    req.AccessType,
		IsFeatured:    req.IsFeatured,
		IsNew:         req.IsNew,
		Tags:          req.Tags,
		SortOrder:     req.SortOrder,
	}
	if req.RequiredTier != "" {
		input.RequiredTier = models.LicenseTier(req.RequiredTier)
	}
	if req.Status != "" {
		input.Status = models.ComponentStatus(req.Status)
	}

	sess := middleware.GetSession(r.Context())
	c, err := h.components.Create(r.Context(), sess.UserID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, c)
}

func (h *ComponentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req types.UpdateComponentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	c, err := h.components.Update(r.Context(), sess.UserID, id, updateComponentInput(&req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, c)
}

func (h *ComponentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.components.Delete(r.Context(), sess.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "component deleted")
}

func (h *ComponentsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req types.ComponentReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	subcategoryID, err := uuid.Parse(req.SubcategoryID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid subcategoryId"))
		return
	}
	updates, err := parseReorderItems(req.Components)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	if err := h.components.Reorder(r.Context(), sess.UserID, subcategoryID, updates); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "components reordered")
}

func (h *ComponentsHandler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	var req types.ComponentCheckSlugRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	subcategoryID, err := uuid.Parse(req.SubcategoryID)
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid subcategoryId"))
		return
	}
	excludeID, err := optUUIDFromString(req.ExcludeID)
	if err != nil {
		respondError(w, err)
		return
	}

	check, err := h.components.CheckSlug(r.Context(), subcategoryID, req.Slug, excludeID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, check)
}

func (h *ComponentsHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req types.ComponentBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	ids, err := parseIDList(req.ComponentIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	targetSubcategoryID, err := optUUIDFromString(req.TargetSubcategoryID)
	if err != nil {
		respondError(w, err)
		return
	}

	input := &services.ComponentBatchInput{
		Operation:           services.BatchOperation(req.Operation),
		IDs:                 ids,
		TargetSubcategoryID: targetSubcategoryID,
	}
	if req.Data != nil {
		input.Update = updateComponentInput(req.Data)
	}

	sess := middleware.GetSession(r.Context())
	res, err := h.components.Batch(r.Context(), sess.UserID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, res)
}

// RecordView bumps the view counter. Anonymous traffic counts too.
func (h *ComponentsHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.components.RecordView(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "view recorded")
}

func (h *ComponentsHandler) RecordCopy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.components.RecordCopy(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "copy recorded")
}

// UploadPreview accepts a multipart "image" part and replaces the component's
// preview image.
func (h *ComponentsHandler) UploadPreview(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid multipart body"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "image file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respondError(w, appErr.Wrap(err, appErr.CodeInternal, "read upload"))
		return
	}
	if len(data) > maxUploadBytes {
		respondError(w, appErr.New(appErr.CodeValidation, "image exceeds the size limit"))
		return
	}

	sess := middleware.GetSession(r.Context())
	c, err := h.components.SetPreviewImage(r.Context(), sess.UserID, id, header.Filename, data)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, c)
}

// --- Versions ---

func (h *ComponentsHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	componentID, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.versions.ListByComponent(r.Context(), componentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}

func (h *ComponentsHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	componentID, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req types.CreateVersionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	sess := middleware.GetSession(r.Context())
	v, err := h.versions.Create(r.Context(), sess.UserID, &services.CreateVersionInput{
		ComponentID:   componentID,
		Framework:     req.Framework,
		CSSFramework:  req.CSSFramework,
		VersionNumber: req.VersionNumber,
		CodePreview:   req.CodePreview,
		CodeFull:      req.CodeFull,
		Dependencies:  req.Dependencies,
		Integrations:  req.Integrations,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, v)
}

// GetVariant resolves one version by framework, css framework and version
// number. Missing query params fall back to the default version.
func (h *ComponentsHandler) GetVariant(w http.ResponseWriter, r *http.Request) {
	componentID, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	q := r.URL.Query()
	framework := q.Get("framework")
	cssFramework := q.Get("cssFramework")
	versionNumber := q.Get("versionNumber")

	if framework == "" && cssFramework == "" && versionNumber == "" {
		v, err := h.versions.GetDefault(r.Context(), componentID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondOK(w, v)
		return
	}
	if framework == "" || cssFramework == "" || versionNumber == "" {
		respondError(w, appErr.New(appErr.CodeValidation, "framework, cssFramework and versionNumber are required together"))
		return
	}

	v, err := h.versions.GetVariant(r.Context(), componentID, framework, cssFramework, versionNumber)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, v)
}

func (h *ComponentsHandler) SetDefaultVersion(w http.ResponseWriter, r *http.Request) {
	componentID, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	versionID, err := uuid.Parse(chi.URLParam(r, "versionId"))
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid versionId"))
		return
	}

	sess := middleware.GetSession(r.Context())
	if err := h.versions.SetDefault(r.Context(), sess.UserID, componentID, versionID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "default version updated")
}

func (h *ComponentsHandler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	versionID, err := uuid.Parse(chi.URLParam(r, "versionId"))
	if err != nil {
		respondError(w, appErr.New(appErr.CodeValidation, "invalid versionId"))
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.versions.Delete(r.Context(), sess.UserID, versionID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "version deleted")
}

func updateComponentInput(req *types.UpdateComponentRequest) *services.UpdateComponentInput {
	input := &services.UpdateComponentInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsFree:      req.IsFree,
		AccessType:  req.AccessType,
		IsFeatured:  req.IsFeatured,
		IsNew:       req.IsNew,
		Tags:        req.Tags,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
	if req.RequiredTier != nil {
		tier := models.LicenseTier(*req.RequiredTier)
		input.RequiredTier = &tier
	}
	if req.Status != nil {
		status := models.ComponentStatus(*req.Status)
		input.Status = &status
	}
	return input
}

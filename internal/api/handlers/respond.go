package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, types.OK(data))
}

func respondCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, types.OK(data))
}

func respondMessage(w http.ResponseWriter, data any, msg string) {
	writeJSON(w, http.StatusOK, types.OKMessage(data, msg))
}

func respondError(w http.ResponseWriter, err error) {
	writeJSON(w, types.StatusForCode(appErr.CodeOf(err)), types.Fail(types.FromAppError(err)))
}

// respondValidation turns validator errors into field-keyed details suitable
// for form display.
func respondValidation(w http.ResponseWriter, err error) {
	details := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details[fe.Field()] = "failed " + fe.Tag() + " validation"
		}
	}
	writeJSON(w, http.StatusUnprocessableEntity, types.Fail(&types.APIError{
		Code:    string(appErr.CodeValidation),
		Message: "request validation failed",
		Details: details,
	}))
}

func respondBadJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, types.Fail(&types.APIError{
		Code:    string(appErr.CodeValidation),
		Message: "invalid json body",
	}))
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func urlID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, appErr.New(appErr.CodeValidation, "invalid "+name)
	}
	return id, nil
}

// pageOptions parses and validates the shared pagination/sort params.
// Unknown sort fields and directions are rejected rather than silently
// falling back to the default order.
func pageOptions(q url.Values, v *validator.Validate) (repository.PageOptions, error) {
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	sq := types.SearchQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Search:    q.Get("search"),
	}
	if err := v.Struct(sq); err != nil {
		return repository.PageOptions{}, err
	}
	return repository.PageOptions{
		Page:      sq.Page,
		Limit:     sq.Limit,
		SortBy:    sq.SortBy,
		SortOrder: sq.SortOrder,
	}, nil
}

func optBool(q url.Values, key string) *bool {
	if q.Get(key) == "" {
		return nil
	}
	b, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return nil
	}
	return &b
}

func optUUID(q url.Values, key string) (*uuid.UUID, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, appErr.New(appErr.CodeValidation, "invalid "+key)
	}
	return &id, nil
}

func optUUIDFromString(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, appErr.New(appErr.CodeValidation, "invalid id")
	}
	return &id, nil
}

func parseIDList(ss []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, appErr.New(appErr.CodeValidation, "invalid id in list")
		}
		out = append(out, id)
	}
	return out, nil
}

func parseReorderItems(items []types.ReorderItem) ([]repository.SortOrderUpdate, error) {
	out := make([]repository.SortOrderUpdate, 0, len(items))
	for _, it := range items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return nil, appErr.New(appErr.CodeValidation, "invalid id in reorder list")
		}
		out = append(out, repository.SortOrderUpdate{ID: id, SortOrder: it.SortOrder})
	}
	return out, nil
}

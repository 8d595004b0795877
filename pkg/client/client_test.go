package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

func TestClient_ListProductsDecodesEnvelope(t *testing.T) {
	products := []models.Product{{ID: uuid.New(), Name: "Ona UI", Slug: "ona-ui"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/catalog/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.OK(products))
	}))
	defer srv.Close()

	got, err := New(srv.URL).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ona-ui", got[0].Slug)
}

func TestClient_SurfacesAPIErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(types.Fail(&types.APIError{
			Code:    string(appErr.CodeNotFound),
			Message: "component not found",
		}))
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetComponent(context.Background(), uuid.New())
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	require.Contains(t, err.Error(), "component not found")
}

func TestClient_LoginStoresToken(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/auth/login":
			_ = json.NewEncoder(w).Encode(types.OK(map[string]any{
				"token": "tok-123",
				"user":  models.User{ID: uuid.New(), Email: "a@b.c"},
			}))
		case "/api/v1/licenses/mine":
			sawAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(types.OK([]models.License{}))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Login(context.Background(), "a@b.c", "secret123")
	require.NoError(t, err)
	require.Equal(t, "tok-123", res.Token)

	_, err = c.MyLicenses(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", sawAuth)
}

func TestClient_SearchComponentsBuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "react", q.Get("framework"))
		require.Equal(t, "name", q.Get("sortBy"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.OK(map[string]any{"items": []models.Component{}, "pagination": map[string]any{}}))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SearchComponents(context.Background(), ComponentSearch{
		Page:      2,
		Framework: "react",
		SortBy:    "name",
	})
	require.NoError(t, err)
}

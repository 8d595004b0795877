// Package client provides typed request builders for the catalog API, used
// by the frontends instead of hand-built fetch calls. Every method decodes
// the uniform response envelope and surfaces API failures as AppErrors
// carrying the server's error code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken swaps the bearer token, typically after Login.
func (c *Client) SetToken(token string) { c.token = token }

// envelope mirrors the wire format; Data stays raw until the caller's type
// is known.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *wireError      `json:"error"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var zero T

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return zero, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("decode response envelope: %w", err)
	}
	if !env.Success {
		if env.Error != nil {
			return zero, appErr.New(appErr.Code(env.Error.Code), env.Error.Message)
		}
		return zero, appErr.New(appErr.CodeUnknown, fmt.Sprintf("request failed with status %d", res.StatusCode))
	}

	var out T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return zero, fmt.Errorf("decode response data: %w", err)
		}
	}
	return out, nil
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	out, err := do[LoginResult](ctx, c, http.MethodPost, "/api/v1/auth/login", nil,
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// ListProducts returns the active products of the public catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	return do[[]models.Product](ctx, c, http.MethodGet, "/api/v1/catalog/products", nil, nil)
}

// ListCategories returns the active categories under a product slug.
func (c *Client) ListCategories(ctx context.Context, productSlug string) ([]models.Category, error) {
	return do[[]models.Category](ctx, c, http.MethodGet,
		"/api/v1/catalog/products/"+url.PathEscape(productSlug)+"/categories", nil, nil)
}

// ListSubcategories returns the active subcategories under a category.
func (c *Client) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	return do[[]models.Subcategory](ctx, c, http.MethodGet,
		"/api/v1/catalog/categories/"+categoryID.String()+"/subcategories", nil, nil)
}

// ComponentSearch is the query for the public component browse endpoint.
type ComponentSearch struct {
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
	Search        string
	Framework     string
	SubcategoryID *uuid.UUID
	CategoryID    *uuid.UUID
	IsFree        *bool
	IsFeatured    *bool
}

func (s ComponentSearch) query() url.Values {
	q := url.Values{}
	if s.Page > 0 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit > 0 {
		q.Set("limit", strconv.Itoa(s.Limit))
	}
	if s.SortBy != "" {
		q.Set("sortBy", s.SortBy)
	}
	if s.SortOrder != "" {
		q.Set("sortOrder", s.SortOrder)
	}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.Framework != "" {
		q.Set("framework", s.Framework)
	}
	if s.SubcategoryID != nil {
		q.Set("subcategoryId", s.SubcategoryID.String())
	}
	if s.CategoryID != nil {
		q.Set("categoryId", s.CategoryID.String())
	}
	if s.IsFree != nil {
		q.Set("isFree", strconv.FormatBool(*s.IsFree))
	}
	if s.IsFeatured != nil {
		q.Set("isFeatured", strconv.FormatBool(*s.IsFeatured))
	}
	return q
}

// SearchComponents browses published components with pagination and filters.
func (c *Client) SearchComponents(ctx context.Context, s ComponentSearch) (*repository.Page[models.Component], error) {
	out, err := do[repository.Page[models.Component]](ctx, c, http.MethodGet, "/api/v1/catalog/components", s.query(), nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetComponent fetches a single component by id.
func (c *Client) GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	out, err := do[models.Component](ctx, c, http.MethodGet, "/api/v1/catalog/components/"+id.String(), nil, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVariant fetches one framework/css/version variant of a component.
// Leave all three empty to get the default variant.
func (c *Client) GetVariant(ctx context.Context, id uuid.UUID, framework, cssFramework, versionNumber string) (*models.ComponentVersion, error) {
	q := url.Values{}
	if framework != "" {
		q.Set("framework", framework)
		q.Set("cssFramework", cssFramework)
		q.Set("versionNumber", versionNumber)
	}
	out, err := do[models.ComponentVersion](ctx, c, http.MethodGet, "/api/v1/catalog/components/"+id.String()+"/variant", q, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordView reports a component page view.
func (c *Client) RecordView(ctx context.Context, id uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodPost, "/api/v1/catalog/components/"+id.String()+"/view", nil, nil)
	return err
}

// RecordCopy reports a component code copy.
func (c *Client) RecordCopy(ctx context.Context, id uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodPost, "/api/v1/catalog/components/"+id.String()+"/copy", nil, nil)
	return err
}

// CheckoutResult pairs the created checkout session with its pending license.
type CheckoutResult struct {
	Checkout json.RawMessage `json:"checkout"`
	License  models.License  `json:"license"`
}

// Checkout starts a license purchase for the authenticated user.
func (c *Client) Checkout(ctx context.Context, tier models.LicenseTier, seats int) (*CheckoutResult, error) {
	out, err := do[CheckoutResult](ctx, c, http.MethodPost, "/api/v1/licenses/checkout", nil,
		map[string]any{"tier": string(tier), "seats": seats})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MyLicenses lists the authenticated user's licenses.
func (c *Client) MyLicenses(ctx context.Context) ([]models.License, error) {
	return do[[]models.License](ctx, c, http.MethodGet, "/api/v1/licenses/mine", nil, nil)
}

// Favorite stars a component for the authenticated user.
func (c *Client) Favorite(ctx context.Context, componentID uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodPut, "/api/v1/favorites/"+componentID.String(), nil, nil)
	return err
}

// Unfavorite removes a starred component.
func (c *Client) Unfavorite(ctx context.Context, componentID uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/v1/favorites/"+componentID.String(), nil, nil)
	return err
}

// MyFavorites lists the authenticated user's starred components.
func (c *Client) MyFavorites(ctx context.Context) ([]models.Component, error) {
	return do[[]models.Component](ctx, c, http.MethodGet, "/api/v1/favorites", nil, nil)
}

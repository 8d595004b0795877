package repository

import (
	"fmt"
	"strings"

	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PageOptions carries pagination and sorting parameters for list queries.
type PageOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (o PageOptions) normalized() PageOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Limit <= 0 {
		o.Limit = defaultPageLimit
	}
	if o.Limit > maxPageLimit {
		o.Limit = maxPageLimit
	}
	return o
}

// Pagination is the page envelope returned alongside list results.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
}

// Page bundles one page of rows with its pagination envelope.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes the envelope for a given page, limit and total.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	p := Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: int64(page)*int64(limit) < total,
		HasPrevPage: page > 1,
	}
	if p.HasNextPage {
		n := page + 1
		p.NextPage = &n
	}
	if p.HasPrevPage {
		n := page - 1
		p.PrevPage = &n
	}
	return p
}

// paginate runs the count query and the data query off the same builder so
// both always share identical WHERE clauses. The builder must return a fresh
// query each call because gorm mutates statements in place.
func paginate[T any](opts PageOptions, order string, build func() *gorm.DB) (*Page[T], error) {
	opts = opts.normalized()

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "count query failed")
	}

	items := make([]T, 0, opts.Limit)
	offset := (opts.Page - 1) * opts.Limit
	if err := build().Order(order).Offset(offset).Limit(opts.Limit).Find(&items).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list query failed")
	}

	return &Page[T]{Items: items, Pagination: NewPagination(opts.Page, opts.Limit, total)}, nil
}

// siblingOrder is the deterministic ordering contract for children of one
// parent, depended on by reorder UIs and navigation rendering.
const siblingOrder = "sort_order ASC, name ASC"

var sortColumns = map[string]string{
	"name":       "name",
	"slug":       "slug",
	"sortOrder":  "sort_order",
	"sort_order": "sort_order",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

// orderClause maps a requested sort field to a column from the allow-list,
// falling back to the sibling ordering contract.
func orderClause(opts PageOptions) string {
	col, ok := sortColumns[opts.SortBy]
	if !ok {
		return siblingOrder
	}
	dir := "ASC"
	if strings.EqualFold(opts.SortOrder, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", col, dir)
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageOptionsNormalized(t *testing.T) {
	o := PageOptions{}.normalized()
	require.Equal(t, 1, o.Page)
	require.Equal(t, defaultPageLimit, o.Limit)

	o = PageOptions{Page: -3, Limit: 1000}.normalized()
	require.Equal(t, 1, o.Page)
	require.Equal(t, maxPageLimit, o.Limit)

	o = PageOptions{Page: 4, Limit: 50}.normalized()
	require.Equal(t, 4, o.Page)
	require.Equal(t, 50, o.Limit)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 20, 45)
	require.Equal(t, 3, p.TotalPages)
	require.True(t, p.HasNextPage)
	require.False(t, p.HasPrevPage)
	require.NotNil(t, p.NextPage)
	require.Equal(t, 2, *p.NextPage)
	require.Nil(t, p.PrevPage)

	p = NewPagination(3, 20, 45)
	require.False(t, p.HasNextPage)
	require.True(t, p.HasPrevPage)
	require.Nil(t, p.NextPage)
	require.Equal(t, 2, *p.PrevPage)

	p = NewPagination(1, 20, 0)
	require.Equal(t, 0, p.TotalPages)
	require.False(t, p.HasNextPage)
	require.False(t, p.HasPrevPage)
}

func TestOrderClauseAllowList(t *testing.T) {
	require.Equal(t, "name DESC", orderClause(PageOptions{SortBy: "name", SortOrder: "desc"}))
	require.Equal(t, "created_at ASC", orderClause(PageOptions{SortBy: "createdAt"}))
	require.Equal(t, siblingOrder, orderClause(PageOptions{}))

	// anything off the allow-list falls back to the sibling ordering
	require.Equal(t, siblingOrder, orderClause(PageOptions{SortBy: "name; DROP TABLE products"}))
}

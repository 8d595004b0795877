package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Slug and variant uniqueness must ignore soft-deleted rows. A plain unique
// index would keep a deleted entity's slug reserved even though every read
// path reports the slug available, so re-creating it would fail.
func TestUniqueIndexesArePartialOverLiveRows(t *testing.T) {
	names := map[string]bool{}
	for _, m := range partialUniqueIndexes {
		names[m.name] = true
		require.Contains(t, m.stmt, "deleted_at IS NULL", "index %s must exclude soft-deleted rows", m.name)
		require.Contains(t, m.stmt, "CREATE UNIQUE INDEX "+m.name)
	}

	for _, want := range []string{
		"idx_users_email",
		"idx_products_slug",
		"idx_categories_product_slug",
		"idx_subcategories_category_slug",
		"idx_components_subcategory_slug",
		"idx_versions_component_variant",
		"idx_component_versions_default",
	} {
		require.True(t, names[want], "missing partial unique index %s", want)
	}
}

// The catalog models must not carry composite uniqueIndex tags: AutoMigrate
// would turn those into plain unique indexes that count soft-deleted rows,
// shadowing the partial ones above.
func TestCatalogModelsCarryNoUniqueIndexTags(t *testing.T) {
	for _, m := range registerModels() {
		rt := reflect.TypeOf(m).Elem()
		if rt.Name() == "Favorite" {
			// Favorites are hard-deleted, the tagged unique index is correct.
			continue
		}
		for i := 0; i < rt.NumField(); i++ {
			tag := rt.Field(i).Tag.Get("gorm")
			require.False(t, strings.Contains(tag, "uniqueIndex"),
				"%s.%s must rely on the partial index migrations, not a uniqueIndex tag", rt.Name(), rt.Field(i).Name)
		}
	}
}

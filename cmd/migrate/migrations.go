package main

import (
	"gorm.io/gorm"

	"github.com/ona-ui/catalog/internal/models"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		// Accounts
		&models.User{},
		&models.Favorite{},

		// Catalog hierarchy
		&models.Product{},
		&models.Category{},
		&models.Subcategory{},
		&models.Component{},
		&models.ComponentVersion{},

		// Licensing & audit
		&models.License{},
		&models.AuditEntry{},
	}
}

// runMigrations executes all database migrations. The pgcrypto extension
// must exist before AutoMigrate, otherwise the gen_random_uuid() column
// defaults fail on PostgreSQL versions that don't ship it built in.
func runMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}

	return runCustomMigrations(db)
}

type sqlMigration struct {
	name string
	stmt string
}

// partialUniqueIndexes enforce uniqueness among live rows only. Slug and
// variant uniqueness must not count soft-deleted rows, otherwise a deleted
// entity would keep its slug reserved while every read reports it gone.
// Each index is dropped first so a plain unique leftover from an older
// schema gets replaced.
var partialUniqueIndexes = []sqlMigration{
	{
		name: "idx_users_email",
		stmt: `CREATE UNIQUE INDEX idx_users_email
			ON users(email)
			WHERE deleted_at IS NULL`,
	},
	{
		name: "idx_products_slug",
		stmt: `CREATE UNIQUE INDEX idx_products_slug
			ON products(slug)
			WHERE deleted_at IS NULL`,
	},
	{
		name: "idx_categories_product_slug",
		stmt: `CREATE UNIQUE INDEX idx_categories_product_slug
			ON categories(product_id, slug)
			WHERE deleted_at IS NULL`,
	},
	{
		name: "idx_subcategories_category_slug",
		stmt: `CREATE UNIQUE INDEX idx_subcategories_category_slug
			ON subcategories(category_id, slug)
			WHERE deleted_at IS NULL`,
	},
	{
		name: "idx_components_subcategory_slug",
		stmt: `CREATE UNIQUE INDEX idx_components_subcategory_slug
			ON components(subcategory_id, slug)
			WHERE deleted_at IS NULL`,
	},
	{
		name: "idx_versions_component_variant",
		stmt: `CREATE UNIQUE INDEX idx_versions_component_variant
			ON component_versions(component_id, framework, css_framework, version_number)
			WHERE deleted_at IS NULL`,
	},
	{
		name: "idx_component_versions_default",
		stmt: `CREATE UNIQUE INDEX idx_component_versions_default
			ON component_versions(component_id)
			WHERE is_default AND deleted_at IS NULL`,
	},
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	for _, m := range partialUniqueIndexes {
		if err := db.Exec(`DROP INDEX IF EXISTS ` + m.name).Error; err != nil {
			return err
		}
		if err := db.Exec(m.stmt).Error; err != nil {
			return err
		}
	}

	return addLicenseSeatCheck(db)
}

// addLicenseSeatCheck keeps seat usage within the purchased allowance
func addLicenseSeatCheck(db *gorm.DB) error {
	return db.Exec(`
		ALTER TABLE licenses
		DROP CONSTRAINT IF EXISTS chk_licenses_seats,
		ADD CONSTRAINT chk_licenses_seats CHECK (seats_used >= 0 AND seats_used <= seats_allowed)
	`).Error
}

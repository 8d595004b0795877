package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LicenseTier gates component access.
type LicenseTier string

const (
	TierFree       LicenseTier = "free"
	TierPro        LicenseTier = "pro"
	TierTeam       LicenseTier = "team"
	TierEnterprise LicenseTier = "enterprise"
)

// ComponentStatus is the publication lifecycle of a component.
type ComponentStatus string

const (
	StatusDraft      ComponentStatus = "draft"
	StatusPublished  ComponentStatus = "published"
	StatusArchived   ComponentStatus = "archived"
	StatusDeprecated ComponentStatus = "deprecated"
)

// Component is a sellable UI component under a Subcategory. Slug uniqueness
// is scoped to the subcategory among live rows; the partial unique index
// lives in cmd/migrate.
type Component struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SubcategoryID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"subcategory_id" validate:"required"`
	Name            string          `gorm:"not null" json:"name" validate:"required"`
	Slug            string          `gorm:"not null" json:"slug" validate:"required"`
	Description     string          `gorm:"type:text" json:"description"`
	IsFree          bool            `gorm:"not null;default:false" json:"is_free"`
	RequiredTier    LicenseTier     `gorm:"type:varchar(16);not null;default:'free';index" json:"required_tier"`
	AccessType      string          `gorm:"type:varchar(32);not null;default:'preview_only'" json:"access_type"`
	Status          ComponentStatus `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`
	IsFeatured      bool            `gorm:"not null;default:false;index" json:"is_featured"`
	IsNew           bool            `gorm:"not null;default:false" json:"is_new"`
	Tags            datatypes.JSON  `gorm:"type:jsonb" json:"tags"`
	SortOrder       int             `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive        bool            `gorm:"not null;default:true;index" json:"is_active"`
	PreviewImageURL string          `gorm:"type:text" json:"preview_image_url"`
	ViewCount       int64           `gorm:"not null;default:0" json:"view_count"`
	CopyCount       int64           `gorm:"not null;default:0" json:"copy_count"`
	ConversionRate  float64         `gorm:"not null;default:0" json:"conversion_rate"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	Versions []ComponentVersion `gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE" json:"versions,omitempty"`
}

// ComponentVersion carries the code payloads for one framework/css pairing.
// Variant uniqueness per component and the at-most-one-default rule are both
// enforced by partial unique indexes created in cmd/migrate.
type ComponentVersion struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ComponentID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"component_id" validate:"required"`
	Framework     string         `gorm:"type:varchar(32);not null" json:"framework" validate:"required"`
	CSSFramework  string         `gorm:"type:varchar(32);not null" json:"css_framework" validate:"required"`
	VersionNumber string         `gorm:"type:varchar(32);not null" json:"version_number" validate:"required"`
	CodePreview   string         `gorm:"type:text" json:"code_preview"`
	CodeFull      string         `gorm:"type:text" json:"-"`
	CodeEncrypted []byte         `gorm:"type:bytea" json:"-"`
	Dependencies  datatypes.JSON `gorm:"type:jsonb" json:"dependencies"`
	Integrations  datatypes.JSON `gorm:"type:jsonb" json:"integrations"`
	IsDefault     bool           `gorm:"not null;default:false;index" json:"is_default"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

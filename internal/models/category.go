package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category belongs to exactly one Product. Slug uniqueness is per product
// among live rows only; the partial unique index lives in cmd/migrate so a
// soft-deleted category frees its slug.
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id" validate:"required"`
	Name        string         `gorm:"not null" json:"name" validate:"required"`
	Slug        string         `gorm:"not null" json:"slug" validate:"required"`
	Description string         `gorm:"type:text" json:"description"`
	IconName    string         `gorm:"type:varchar(64)" json:"icon_name"`
	SortOrder   int            `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"subcategories,omitempty"`
}

// Subcategory belongs to exactly one Category; same shape minus the icon.
type Subcategory struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id" validate:"required"`
	Name        string         `gorm:"not null" json:"name" validate:"required"`
	Slug        string         `gorm:"not null" json:"slug" validate:"required"`
	Description string         `gorm:"type:text" json:"description"`
	SortOrder   int            `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Components []Component `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:CASCADE" json:"components,omitempty"`
}

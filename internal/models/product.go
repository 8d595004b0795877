package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is the top-level namespace of the catalog. Every category lives
// under exactly one product and product deletion cascades down the tree.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"not null" json:"name" validate:"required"`
	Slug        string         `gorm:"not null" json:"slug" validate:"required"`
	Description string         `gorm:"type:text" json:"description"`
	SortOrder   int            `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Categories []Category `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the root identity entity; it owns licenses, favorites and audit entries.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string         `gorm:"not null" json:"email" validate:"required,email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name" validate:"required"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Licenses  []License  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"licenses,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favorites,omitempty"`
}

// Favorite marks a component a user has starred.
type Favorite struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_component" json:"user_id"`
	ComponentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_component" json:"component_id"`
	CreatedAt   time.Time `json:"created_at"`
}

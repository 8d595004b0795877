package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEntry records one administrative action. Reorders and batch
// operations write a single entry for the whole action.
type AuditEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ActorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action     string         `gorm:"type:varchar(64);not null;index" json:"action"`
	EntityType string         `gorm:"type:varchar(32);not null;index" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"type:uuid;index" json:"entity_id,omitempty"`
	Detail     datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

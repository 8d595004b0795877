package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus tracks the billing state of a license.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// License grants a user tiered access with seat allocation. The
// seats_used <= seats_allowed invariant is a CHECK constraint added in
// cmd/migrate. ValidUntil nil means lifetime.
type License struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Tier          LicenseTier    `gorm:"type:varchar(16);not null;index" json:"tier" validate:"required"`
	SeatsAllowed  int            `gorm:"not null;default:1" json:"seats_allowed" validate:"gte=1"`
	SeatsUsed     int            `gorm:"not null;default:0" json:"seats_used"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(16);not null;default:'pending';index" json:"payment_status"`
	ValidFrom     time.Time      `gorm:"not null" json:"valid_from"`
	ValidUntil    *time.Time     `json:"valid_until"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Active reports whether the license is paid and inside its validity window.
func (l *License) Active(now time.Time) bool {
	if l.PaymentStatus != PaymentPaid {
		return false
	}
	if now.Before(l.ValidFrom) {
		return false
	}
	return l.ValidUntil == nil || now.Before(*l.ValidUntil)
}

// Package platform declares the narrow interfaces the catalog consumes from
// external collaborators. Payments and file storage live behind these
// boundaries; the core never sees provider-specific types.
package platform

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutSession is the provider-agnostic view of a started checkout.
type CheckoutSession struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

// PaymentProvider starts checkout sessions for license purchases.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID, tier string, seats int) (*CheckoutSession, error)
}

// UploadResult is the stored location of an uploaded asset.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// FileStore uploads preview images and other assets.
type FileStore interface {
	UploadImage(ctx context.Context, name string, data []byte) (*UploadResult, error)
}

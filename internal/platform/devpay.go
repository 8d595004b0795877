package platform

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// DevPayments issues local checkout sessions without talking to a real
// payment processor. Useful for development and tests; production deploys
// swap in a processor-backed PaymentProvider.
type DevPayments struct {
	baseURL string
}

func NewDevPayments(baseURL string) *DevPayments {
	return &DevPayments{baseURL: strings.TrimRight(baseURL, "/")}
}

var _ PaymentProvider = (*DevPayments)(nil)

func (p *DevPayments) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, tier string, seats int) (*CheckoutSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &CheckoutSession{ID: id, CheckoutURL: p.baseURL + "/checkout/" + id}, nil
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/platform"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"github.com/ona-ui/catalog/pkg/logger"
	"go.uber.org/zap"
)

// tierRank orders license tiers for access checks.
var tierRank = map[models.LicenseTier]int{
	models.TierFree:       0,
	models.TierPro:        1,
	models.TierTeam:       2,
	models.TierEnterprise: 3,
}

type LicenseService interface {
	Checkout(ctx context.Context, userID uuid.UUID, tier models.LicenseTier, seats int) (*platform.CheckoutSession, *models.License, error)
	MarkPaid(ctx context.Context, licenseID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.License, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error)
	List(ctx context.Context, opts repository.PageOptions, f repository.LicenseFilters) (*repository.Page[models.License], error)
	ClaimSeat(ctx context.Context, userID, licenseID uuid.UUID) error
	ReleaseSeat(ctx context.Context, userID, licenseID uuid.UUID) error
	CanAccess(ctx context.Context, userID uuid.UUID, component *models.Component) (bool, error)
}

type licenseService struct {
	licenseRepo repository.LicenseRepository
	payments    platform.PaymentProvider
	auditRepo   repository.AuditRepository
	now         func() time.Time
}

func NewLicenseService(licenseRepo repository.LicenseRepository, payments platform.PaymentProvider, auditRepo repository.AuditRepository) LicenseService {
	return &licenseService{licenseRepo: licenseRepo, payments: payments, auditRepo: auditRepo, now: time.Now}
}

var _ LicenseService = (*licenseService)(nil)

// Checkout creates a pending license and starts a checkout session with the
// payment provider. The license stays pending until MarkPaid.
func (s *licenseService) Checkout(ctx context.Context, userID uuid.UUID, tier models.LicenseTier, seats int) (*platform.CheckoutSession, *models.License, error) {
	logger.L().Info("license checkout", zap.String("user_id", userID.String()), zap.String("tier", string(tier)), zap.Int("seats", seats))

	if _, ok := tierRank[tier]; !ok || tier == models.TierFree {
		return nil, nil, appErr.New(appErr.CodeValidation, "tier is not purchasable")
	}
	if seats < 1 {
		seats = 1
	}

	l := &models.License{
		UserID:        userID,
		Tier:          tier,
		SeatsAllowed:  seats,
		PaymentStatus: models.PaymentPending,
		ValidFrom:     s.now(),
	}
	if err := s.licenseRepo.Create(ctx, l); err != nil {
		return nil, nil, mapWriteError(err, "license already exists")
	}

	session, err := s.payments.CreateCheckoutSession(ctx, userID, string(tier), seats)
	if err != nil {
		return nil, nil, appErr.Wrap(err, appErr.CodeInternal, "create checkout session failed")
	}

	recordAudit(ctx, s.auditRepo, userID, "license.checkout", "license", &l.ID, map[string]any{"tier": string(tier), "seats": seats})
	return session, l, nil
}

func (s *licenseService) MarkPaid(ctx context.Context, licenseID uuid.UUID) error {
	return s.licenseRepo.UpdatePaymentStatus(ctx, licenseID, models.PaymentPaid)
}

func (s *licenseService) Get(ctx context.Context, id uuid.UUID) (*models.License, error) {
	var l models.License
	if err := s.licenseRepo.GetByID(ctx, id, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *licenseService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error) {
	return s.licenseRepo.ListByUser(ctx, userID)
}

func (s *licenseService) List(ctx context.Context, opts repository.PageOptions, f repository.LicenseFilters) (*repository.Page[models.License], error) {
	return s.licenseRepo.Paginate(ctx, opts, f)
}

func (s *licenseService) ClaimSeat(ctx context.Context, userID, licenseID uuid.UUID) error {
	var l models.License
	if err := s.licenseRepo.GetByID(ctx, licenseID, &l); err != nil {
		return err
	}
	if l.UserID != userID {
		return appErr.New(appErr.CodeForbidden, "license belongs to another user")
	}
	if !l.Active(s.now()) {
		return appErr.New(appErr.CodeConflict, "license is not active")
	}
	return s.licenseRepo.ClaimSeat(ctx, licenseID)
}

func (s *licenseService) ReleaseSeat(ctx context.Context, userID, licenseID uuid.UUID) error {
	var l models.License
	if err := s.licenseRepo.GetByID(ctx, licenseID, &l); err != nil {
		return err
	}
	if l.UserID != userID {
		return appErr.New(appErr.CodeForbidden, "license belongs to another user")
	}
	return s.licenseRepo.ReleaseSeat(ctx, licenseID)
}

// CanAccess decides whether the user's active license tier covers the
// component's required tier. Free components are always accessible.
func (s *licenseService) CanAccess(ctx context.Context, userID uuid.UUID, component *models.Component) (bool, error) {
	if component.IsFree || component.RequiredTier == models.TierFree {
		return true, nil
	}

	var l models.License
	err := s.licenseRepo.GetActiveByUser(ctx, userID, s.now(), &l)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return tierRank[l.Tier] >= tierRank[component.RequiredTier], nil
}

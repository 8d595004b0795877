package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/platform"
	"github.com/ona-ui/catalog/internal/repository"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type mockLicenseRepository struct {
	mock.Mock
}

func (m *mockLicenseRepository) Create(ctx context.Context, obj *models.License) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockLicenseRepository) GetByID(ctx context.Context, id any, dest *models.License) error {
	args := m.Called(ctx, id, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.License)
		*dest = *src
	}
	return args.Error(0)
}

func (m *mockLicenseRepository) Update(ctx context.Context, obj *models.License) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockLicenseRepository) Delete(ctx context.Context, id any) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLicenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]models.License), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLicenseRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time, dest *models.License) error {
	args := m.Called(ctx, userID, now, dest)
	if args.Error(0) == nil && args.Get(1) != nil {
		src := args.Get(1).(*models.License)
		*dest = *src
	}
	return args.Error(0)
}

func (m *mockLicenseRepository) Paginate(ctx context.Context, opts repository.PageOptions, f repository.LicenseFilters) (*repository.Page[models.License], error) {
	args := m.Called(ctx, opts, f)
	if v := args.Get(0); v != nil {
		return v.(*repository.Page[models.License]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLicenseRepository) ClaimSeat(ctx context.Context, licenseID uuid.UUID) error {
	args := m.Called(ctx, licenseID)
	return args.Error(0)
}

func (m *mockLicenseRepository) ReleaseSeat(ctx context.Context, licenseID uuid.UUID) error {
	args := m.Called(ctx, licenseID)
	return args.Error(0)
}

func (m *mockLicenseRepository) UpdatePaymentStatus(ctx context.Context, licenseID uuid.UUID, status models.PaymentStatus) error {
	args := m.Called(ctx, licenseID, status)
	return args.Error(0)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, tier string, seats int) (*platform.CheckoutSession, error) {
	args := m.Called(ctx, userID, tier, seats)
	if v := args.Get(0); v != nil {
		return v.(*platform.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newLicenseServiceForTest(repo *mockLicenseRepository, pay *mockPayments) *licenseService {
	svc := NewLicenseService(repo, pay, &mockAuditRepository{}).(*licenseService)
	svc.now = fixedNow
	return svc
}

func TestLicenseService_CheckoutCreatesPendingLicense(t *testing.T) {
	repo := &mockLicenseRepository{}
	pay := &mockPayments{}
	audit := &mockAuditRepository{}
	svc := NewLicenseService(repo, pay, audit).(*licenseService)
	svc.now = fixedNow

	userID := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *models.License) bool {
		return l.UserID == userID && l.Tier == models.TierPro &&
			l.SeatsAllowed == 3 && l.PaymentStatus == models.PaymentPending
	})).Return(nil)
	pay.On("CreateCheckoutSession", mock.Anything, userID, "pro", 3).
		Return(&platform.CheckoutSession{ID: "sess", CheckoutURL: "http://localhost/checkout/sess"}, nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	session, l, err := svc.Checkout(context.Background(), userID, models.TierPro, 3)
	require.NoError(t, err)
	require.Equal(t, "sess", session.ID)
	require.Equal(t, models.PaymentPending, l.PaymentStatus)
	repo.AssertExpectations(t)
	pay.AssertExpectations(t)
}

func TestLicenseService_CheckoutRejectsFreeTier(t *testing.T) {
	svc := newLicenseServiceForTest(&mockLicenseRepository{}, &mockPayments{})

	_, _, err := svc.Checkout(context.Background(), uuid.New(), models.TierFree, 1)
	require.True(t, appErr.IsCode(err, appErr.CodeValidation))
}

func TestLicenseService_ClaimSeat(t *testing.T) {
	userID := uuid.New()
	licenseID := uuid.New()

	active := &models.License{
		ID:            licenseID,
		UserID:        userID,
		Tier:          models.TierTeam,
		SeatsAllowed:  5,
		PaymentStatus: models.PaymentPaid,
		ValidFrom:     fixedNow().Add(-time.Hour),
	}

	t.Run("owner claims on active license", func(t *testing.T) {
		repo := &mockLicenseRepository{}
		svc := newLicenseServiceForTest(repo, &mockPayments{})

		repo.On("GetByID", mock.Anything, licenseID, mock.Anything).Return(nil, active)
		repo.On("ClaimSeat", mock.Anything, licenseID).Return(nil)

		require.NoError(t, svc.ClaimSeat(context.Background(), userID, licenseID))
		repo.AssertExpectations(t)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		repo := &mockLicenseRepository{}
		svc := newLicenseServiceForTest(repo, &mockPayments{})

		repo.On("GetByID", mock.Anything, licenseID, mock.Anything).Return(nil, active)

		err := svc.ClaimSeat(context.Background(), uuid.New(), licenseID)
		require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
		repo.AssertNotCalled(t, "ClaimSeat", mock.Anything, licenseID)
	})

	t.Run("unpaid license cannot claim", func(t *testing.T) {
		repo := &mockLicenseRepository{}
		svc := newLicenseServiceForTest(repo, &mockPayments{})

		pending := *active
		pending.PaymentStatus = models.PaymentPending
		repo.On("GetByID", mock.Anything, licenseID, mock.Anything).Return(nil, &pending)

		err := svc.ClaimSeat(context.Background(), userID, licenseID)
		require.True(t, appErr.IsCode(err, appErr.CodeConflict))
	})
}

func TestLicenseService_CanAccess(t *testing.T) {
	userID := uuid.New()

	t.Run("free component needs no license", func(t *testing.T) {
		svc := newLicenseServiceForTest(&mockLicenseRepository{}, &mockPayments{})

		ok, err := svc.CanAccess(context.Background(), userID, &models.Component{IsFree: true, RequiredTier: models.TierPro})
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("pro license covers pro component", func(t *testing.T) {
		repo := &mockLicenseRepository{}
		svc := newLicenseServiceForTest(repo, &mockPayments{})

		repo.On("GetActiveByUser", mock.Anything, userID, fixedNow(), mock.Anything).
			Return(nil, &models.License{UserID: userID, Tier: models.TierPro, PaymentStatus: models.PaymentPaid})

		ok, err := svc.CanAccess(context.Background(), userID, &models.Component{RequiredTier: models.TierPro})
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("pro license does not cover team component", func(t *testing.T) {
		repo := &mockLicenseRepository{}
		svc := newLicenseServiceForTest(repo, &mockPayments{})

		repo.On("GetActiveByUser", mock.Anything, userID, fixedNow(), mock.Anything).
			Return(nil, &models.License{UserID: userID, Tier: models.TierPro, PaymentStatus: models.PaymentPaid})

		ok, err := svc.CanAccess(context.Background(), userID, &models.Component{RequiredTier: models.TierTeam})
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("no active license denies access", func(t *testing.T) {
		repo := &mockLicenseRepository{}
		svc := newLicenseServiceForTest(repo, &mockPayments{})

		repo.On("GetActiveByUser", mock.Anything, userID, fixedNow(), mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "entity not found"), nil)

		ok, err := svc.CanAccess(context.Background(), userID, &models.Component{RequiredTier: models.TierPro})
		require.NoError(t, err)
		require.False(t, ok)
	})
}

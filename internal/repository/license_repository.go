package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

// LicenseFilters narrows license listings for the admin dashboard.
type LicenseFilters struct {
	UserID        *uuid.UUID
	Tier          *models.LicenseTier
	PaymentStatus *models.PaymentStatus
}

type LicenseRepository interface {
	BaseRepository[models.License]
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error)
	GetActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time, dest *models.License) error
	Paginate(ctx context.Context, opts PageOptions, f LicenseFilters) (*Page[models.License], error)
	ClaimSeat(ctx context.Context, licenseID uuid.UUID) error
	ReleaseSeat(ctx context.Context, licenseID uuid.UUID) error
	UpdatePaymentStatus(ctx context.Context, licenseID uuid.UUID, status models.PaymentStatus) error
}

type licenseRepository struct {
	BaseRepository[models.License]
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) LicenseRepository {
	return &licenseRepository{BaseRepository: NewBaseRepository[models.License](db), db: db}
}

func (r *licenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error) {
	var out []models.License
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list licenses failed")
	}
	return out, nil
}

func (r *licenseRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time, dest *models.License) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND payment_status = ? AND valid_from <= ? AND (valid_until IS NULL OR valid_until > ?)",
			userID, models.PaymentPaid, now, now).
		Order("created_at DESC").First(dest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "no active license")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get active license failed")
	}
	return nil
}

func (r *licenseRepository) Paginate(ctx context.Context, opts PageOptions, f LicenseFilters) (*Page[models.License], error) {
	build := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.License{})
		if f.UserID != nil {
			q = q.Where("user_id = ?", *f.UserID)
		}
		if f.Tier != nil {
			q = q.Where("tier = ?", *f.Tier)
		}
		if f.PaymentStatus != nil {
			q = q.Where("payment_status = ?", *f.PaymentStatus)
		}
		return q
	}
	if opts.SortBy == "" {
		opts.SortBy = "created_at"
		opts.SortOrder = "desc"
	}
	return paginate[models.License](opts, orderClause(opts), build)
}

// ClaimSeat is a single guarded UPDATE; the WHERE clause carries the
// seats_used < seats_allowed invariant so concurrent claims cannot oversell.
func (r *licenseRepository) ClaimSeat(ctx context.Context, licenseID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.License{}).
		Where("id = ? AND seats_used < seats_allowed", licenseID).
		UpdateColumn("seats_used", gorm.Expr("seats_used + 1"))
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "claim seat failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeConflict, "no seats available")
	}
	return nil
}

func (r *licenseRepository) ReleaseSeat(ctx context.Context, licenseID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.License{}).
		Where("id = ? AND seats_used > 0", licenseID).
		UpdateColumn("seats_used", gorm.Expr("seats_used - 1"))
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "release seat failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeConflict, "no seats in use")
	}
	return nil
}

func (r *licenseRepository) UpdatePaymentStatus(ctx context.Context, licenseID uuid.UUID, status models.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.License{}).Where("id = ?", licenseID).Update("payment_status", status)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update payment status failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "license not found")
	}
	return nil
}

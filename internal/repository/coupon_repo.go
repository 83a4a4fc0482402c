package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(ctx context.Context, c *models.Coupon) error
	FindByID(ctx context.Context, id string) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	Delete(ctx context.Context, id string) error
	ConsumeByCode(ctx context.Context, code, consumer string, at time.Time) (*models.Coupon, error)
	SetUsed(ctx context.Context, id string, used bool, at time.Time) (*models.Coupon, error)
	AppendLog(ctx context.Context, log *models.CouponLog) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *couponRepository) FindByID(ctx context.Context, id string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Coupon{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumeByCode is the single-use cornerstone: one conditional UPDATE flips
// used=false to used=true, so under concurrent redemption exactly one caller
// sees RowsAffected == 1. Losers get gorm.ErrRecordNotFound whether the
// coupon is absent or already spent.
func (r *couponRepository) ConsumeByCode(ctx context.Context, code, consumer string, at time.Time) (*models.Coupon, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ? AND used = ?", code, false).
		Updates(map[string]any{
			"used":    true,
			"used_at": at,
			"used_by": consumer,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByCode(ctx, code)
}

func (r *couponRepository) SetUsed(ctx context.Context, id string, used bool, at time.Time) (*models.Coupon, error) {
	updates := map[string]any{"used": used}
	if used {
		updates["used_at"] = at
	} else {
		updates["used_at"] = nil
		updates["used_by"] = ""
	}
	res := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *couponRepository) AppendLog(ctx context.Context, log *models.CouponLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

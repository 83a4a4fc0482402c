package service

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		price, discount, want float64
	}{
		{100, 10, 90},
		{100, 0, 100},
		{100, 100, 0},
		{0, 50, 0},
		{99.99, 33, 66.99},
		{10, 150, 0}, // floor at zero even for bogus stored discounts
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, DiscountedPrice(tc.price, tc.discount), 0.001,
			"price %.2f discount %.0f", tc.price, tc.discount)
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCouponCode("  save10 "))
}

func TestValidate_Peek(t *testing.T) {
	repo := &mockCouponRepo{
		findByCodeFn: func(ctx context.Context, code string) (*models.Coupon, error) {
			assert.Equal(t, "SAVE10", code)
			return &models.Coupon{Code: "SAVE10", Discount: 10}, nil
		},
	}
	svc := NewCouponService(repo, zerolog.Nop())

	res, err := svc.Validate(context.Background(), "save10")

	assert.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 10.0, res.Discount)
}

func TestValidate_UsedOrAbsent(t *testing.T) {
	used := &mockCouponRepo{
		findByCodeFn: func(ctx context.Context, code string) (*models.Coupon, error) {
			return &models.Coupon{Code: code, Discount: 10, Used: true}, nil
		},
	}
	svc := NewCouponService(used, zerolog.Nop())
	res, err := svc.Validate(context.Background(), "SAVE10")
	assert.NoError(t, err)
	assert.False(t, res.Valid)

	svc = NewCouponService(&mockCouponRepo{}, zerolog.Nop())
	res, err = svc.Validate(context.Background(), "MISSING")
	assert.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestConsume_SingleUse(t *testing.T) {
	consumed := false
	repo := &mockCouponRepo{
		consumeByCodeFn: func(ctx context.Context, code, consumer string, at time.Time) (*models.Coupon, error) {
			if consumed {
				return nil, gorm.ErrRecordNotFound
			}
			consumed = true
			now := time.Now()
			return &models.Coupon{Code: code, Discount: 10, Used: true, UsedAt: &now, UsedBy: consumer}, nil
		},
	}
	svc := NewCouponService(repo, zerolog.Nop())

	res, err := svc.Consume(context.Background(), "SAVE10", "a@x.com")
	assert.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 10.0, res.Discount)

	_, err = svc.Consume(context.Background(), "SAVE10", "b@x.com")
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestConsume_LogFailureDoesNotFail(t *testing.T) {
	repo := &mockCouponRepo{
		consumeByCodeFn: func(ctx context.Context, code, consumer string, at time.Time) (*models.Coupon, error) {
			return &models.Coupon{Code: code, Discount: 5, Used: true}, nil
		},
		appendLogFn: func(ctx context.Context, log *models.CouponLog) error {
			return gorm.ErrInvalidDB
		},
	}
	svc := NewCouponService(repo, zerolog.Nop())

	res, err := svc.Consume(context.Background(), "SAVE5", "a@x.com")

	assert.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestCreate_BadDiscount(t *testing.T) {
	svc := NewCouponService(&mockCouponRepo{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), "SAVE", 120, "admin")
	assert.ErrorIs(t, err, ErrBadDiscount)

	_, err = svc.Create(context.Background(), "SAVE", -1, "admin")
	assert.ErrorIs(t, err, ErrBadDiscount)
}

func TestGenerate_CountAndPrefix(t *testing.T) {
	var stored []*models.Coupon
	repo := &mockCouponRepo{
		createFn: func(ctx context.Context, c *models.Coupon) error {
			stored = append(stored, c)
			return nil
		},
	}
	svc := NewCouponService(repo, zerolog.Nop())

	coupons, err := svc.Generate(context.Background(), 5, 15, "admin")

	assert.NoError(t, err)
	assert.Len(t, coupons, 5)
	for _, c := range stored {
		assert.Contains(t, c.Code, "CPN-")
		assert.Equal(t, 15.0, c.Discount)
	}
}

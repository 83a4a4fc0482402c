package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/internal/ticketcode"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrBadDiscount = errors.New("discount must be between 0 and 100")

type CouponResult struct {
	Valid    bool
	Discount float64
}

type CouponService interface {
	Create(ctx context.Context, code string, discount float64, actor string) (*models.Coupon, error)
	Generate(ctx context.Context, count int, discount float64, actor string) ([]models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	// Validate peeks at a coupon without spending it.
	Validate(ctx context.Context, code string) (*CouponResult, error)
	// Consume atomically spends a coupon; exactly one concurrent caller wins.
	Consume(ctx context.Context, code, consumer string) (*CouponResult, error)
	MarkUsed(ctx context.Context, id, actor string) (*models.Coupon, error)
	MarkUnused(ctx context.Context, id, actor string) (*models.Coupon, error)
	Delete(ctx context.Context, id, actor string) error
}

type couponService struct {
	coupons repository.CouponRepository
	log     zerolog.Logger
}

func NewCouponService(coupons repository.CouponRepository, log zerolog.Logger) CouponService {
	return &couponService{coupons: coupons, log: log}
}

// NormalizeCouponCode upper-cases and trims a code so "save10 " and "SAVE10"
// are the same coupon.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountedPrice applies a percentage discount, floored at zero and rounded
// to 2 decimals.
func DiscountedPrice(price, discount float64) float64 {
	reduced := price - price*discount/100
	if reduced < 0 {
		reduced = 0
	}
	return math.Round(reduced*100) / 100
}

func (s *couponService) Create(ctx context.Context, code string, discount float64, actor string) (*models.Coupon, error) {
	if discount < 0 || discount > 100 {
		return nil, ErrBadDiscount
	}
	c := &models.Coupon{
		ID:       uuid.NewString(),
		Code:     NormalizeCouponCode(code),
		Discount: discount,
	}
	if err := s.coupons.Create(ctx, c); err != nil {
		return nil, err
	}
	s.appendLog(ctx, c.Code, models.CouponLogCreated, actor)
	return c, nil
}

func (s *couponService) Generate(ctx context.Context, count int, discount float64, actor string) ([]models.Coupon, error) {
	if discount < 0 || discount > 100 {
		return nil, ErrBadDiscount
	}

	coupons := make([]models.Coupon, 0, count)
	for i := 0; i < count; i++ {
		c := &models.Coupon{
			ID:       uuid.NewString(),
			Code:     "CPN-" + ticketcode.Alphanumeric(8),
			Discount: discount,
		}
		if err := s.coupons.Create(ctx, c); err != nil {
			// Random 8-char codes collide essentially never; a duplicate
			// here is worth one more draw, anything else aborts the batch.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				i--
				continue
			}
			return coupons, err
		}
		s.appendLog(ctx, c.Code, models.CouponLogGenerated, actor)
		coupons = append(coupons, *c)
	}
	return coupons, nil
}

func (s *couponService) List(ctx context.Context) ([]models.Coupon, error) {
	return s.coupons.List(ctx)
}

func (s *couponService) Validate(ctx context.Context, code string) (*CouponResult, error) {
	c, err := s.coupons.FindByCode(ctx, NormalizeCouponCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CouponResult{Valid: false}, nil
		}
		return nil, err
	}
	if c.Used {
		return &CouponResult{Valid: false}, nil
	}
	return &CouponResult{Valid: true, Discount: c.Discount}, nil
}

func (s *couponService) Consume(ctx context.Context, code, consumer string) (*CouponResult, error) {
	normalized := NormalizeCouponCode(code)
	c, err := s.coupons.ConsumeByCode(ctx, normalized, consumer, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponInvalid
		}
		return nil, err
	}
	s.appendLog(ctx, normalized, models.CouponLogConsumed, consumer)
	return &CouponResult{Valid: true, Discount: c.Discount}, nil
}

func (s *couponService) MarkUsed(ctx context.Context, id, actor string) (*models.Coupon, error) {
	c, err := s.coupons.SetUsed(ctx, id, true, time.Now())
	if err != nil {
		return nil, err
	}
	s.appendLog(ctx, c.Code, models.CouponLogMarkUsed, actor)
	return c, nil
}

func (s *couponService) MarkUnused(ctx context.Context, id, actor string) (*models.Coupon, error) {
	c, err := s.coupons.SetUsed(ctx, id, false, time.Time{})
	if err != nil {
		return nil, err
	}
	s.appendLog(ctx, c.Code, models.CouponLogMarkUnused, actor)
	return c, nil
}

func (s *couponService) Delete(ctx context.Context, id, actor string) error {
	c, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.coupons.Delete(ctx, id); err != nil {
		return err
	}
	s.appendLog(ctx, c.Code, models.CouponLogDeleted, actor)
	return nil
}

// appendLog writes the audit trail; failures are logged and swallowed so the
// ledger mutation stands.
func (s *couponService) appendLog(ctx context.Context, code, action, actor string) {
	err := s.coupons.AppendLog(ctx, &models.CouponLog{
		CouponCode: code,
		Action:     action,
		Actor:      actor,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("coupon", code).Str("action", action).Msg("coupon log write failed")
	}
}

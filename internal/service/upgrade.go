package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/pkg/payment"
	"github.com/Eursukkul/event-registration-service/pkg/rabbitmq"
	"github.com/Eursukkul/event-registration-service/pkg/retry"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type UpgradeInput struct {
	EntityType string
	EntityID   string
	Category   string
	Amount     float64
	Email      string
	TxID       string
	CouponCode string
}

type UpgradeResult struct {
	Upgraded   bool
	TicketCode string
	Category   string

	// Quote response: the upgrade was not applied, pay first.
	PaymentRequired bool
	CheckoutURL     string
}

type UpgradeService interface {
	Upgrade(ctx context.Context, in UpgradeInput) (*UpgradeResult, error)
}

type upgradeService struct {
	registrants repository.RegistrantRepository
	tickets     repository.TicketRepository
	coupons     CouponService
	payments    payment.Client
	publisher   *rabbitmq.Publisher
	log         zerolog.Logger
}

func NewUpgradeService(
	registrants repository.RegistrantRepository,
	tickets repository.TicketRepository,
	coupons CouponService,
	payments payment.Client,
	publisher *rabbitmq.Publisher,
	log zerolog.Logger,
) UpgradeService {
	return &upgradeService{
		registrants: registrants,
		tickets:     tickets,
		coupons:     coupons,
		payments:    payments,
		publisher:   publisher,
		log:         log,
	}
}

func (s *upgradeService) Upgrade(ctx context.Context, in UpgradeInput) (*UpgradeResult, error) {
	// 1. Resolve the registrant
	role, ok := models.ParseRole(in.EntityType)
	if !ok {
		return nil, ErrUnknownRole
	}
	reg, err := s.registrants.FindByID(ctx, role, in.EntityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrantNotFound
		}
		return nil, err
	}

	// 2. Authorize against the verified email on file. OTP verification
	// happens upstream; a registrant without a stored email cannot upgrade.
	if reg.Email == nil || *reg.Email == "" {
		return nil, ErrForbidden
	}
	if in.Email != "" && !strings.EqualFold(in.Email, *reg.Email) {
		return nil, ErrForbidden
	}

	// 3. Paid upgrade without a transaction id: quote only. The coupon, if
	// any, is peeked to price the order but never consumed here — abandoned
	// checkouts must not burn coupons.
	if in.Amount > 0 && in.TxID == "" {
		return s.quote(ctx, role, reg, in)
	}

	// 4. Consume the coupon; a lost race aborts the whole upgrade before
	// anything is written.
	if in.CouponCode != "" {
		if _, err := s.coupons.Consume(ctx, in.CouponCode, *reg.Email); err != nil {
			return nil, err
		}
	}

	// 5. Find-or-create the ticket record; an existing ticket keeps its code.
	ticket, err := s.upsertTicket(ctx, role, reg, in.Category)
	if err != nil {
		// The coupon, if consumed in step 4, stays consumed. Accepted risk,
		// logged loudly so operations can reconcile.
		s.log.Error().Err(err).
			Str("entity", role.Collection()+"/"+reg.ID).
			Str("coupon", in.CouponCode).
			Msg("ticket upsert failed after coupon consumption")
		return nil, err
	}

	// 6. Sync the registrant's projection; the ticket record is already
	// authoritative, so a failure is recorded, not retried.
	codeNum := numericProjection(ticket.TicketCode)
	if err := s.registrants.SyncTicket(ctx, reg.ID, ticket.Category, ticket.TicketCode, codeNum); err != nil {
		s.log.Error().Err(err).
			Str("registrant", reg.ID).
			Str("ticket_code", ticket.TicketCode).
			Msg("registrant ticket sync failed, ticket record is authoritative")
	}

	// 7. Queue the badge notification; the caller's result does not depend
	// on delivery.
	s.notifyUpgraded(role, reg, ticket)

	return &UpgradeResult{
		Upgraded:   true,
		TicketCode: ticket.TicketCode,
		Category:   ticket.Category,
	}, nil
}

// quote prices the order (coupon peeked, not spent) and hands off to the
// payment service. No ticket or registrant state changes.
func (s *upgradeService) quote(ctx context.Context, role models.Role, reg *models.Registrant, in UpgradeInput) (*UpgradeResult, error) {
	amount := in.Amount
	if in.CouponCode != "" {
		res, err := s.coupons.Validate(ctx, in.CouponCode)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, ErrCouponInvalid
		}
		amount = DiscountedPrice(amount, res.Discount)
	}

	order, err := s.payments.CreateOrder(ctx, payment.OrderRequest{
		Amount:      amount,
		Currency:    "INR",
		ReferenceID: role.Collection() + ":" + reg.ID,
		Customer:    *reg.Email,
		Metadata: map[string]string{
			"category": in.Category,
			"coupon":   in.CouponCode,
		},
	})
	if err != nil {
		return nil, err
	}

	return &UpgradeResult{
		PaymentRequired: true,
		CheckoutURL:     order.CheckoutURL,
		Category:        in.Category,
	}, nil
}

// upsertTicket finds or creates the ticket keyed by (entityType, entityID).
// Creation uses the allocator's bounded-retry discipline: a duplicate can be
// a code collision (new code, retry) or this upsert racing itself (re-fetch
// the winner).
func (s *upgradeService) upsertTicket(ctx context.Context, role models.Role, reg *models.Registrant, category string) (*models.Ticket, error) {
	entityType := role.Collection()
	now := time.Now()

	existing, err := s.tickets.FindByEntity(ctx, entityType, reg.ID)
	if err == nil {
		if uerr := s.tickets.UpdateCategory(ctx, existing.ID, category, existing.Category, now); uerr != nil {
			return nil, uerr
		}
		existing.PreviousCategory = existing.Category
		existing.Category = category
		existing.UpgradedAt = &now
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var created *models.Ticket
	err = retry.Do(codeAttempts, func() error {
		ticket := &models.Ticket{
			EntityType:       entityType,
			EntityID:         reg.ID,
			TicketCode:       codeForRole(role),
			Category:         category,
			PreviousCategory: reg.TicketCategory,
			UpgradedAt:       &now,
		}
		if cerr := s.tickets.Create(ctx, ticket); cerr != nil {
			if errors.Is(cerr, gorm.ErrDuplicatedKey) {
				// Entity race: another request created this ticket first.
				if winner, ferr := s.tickets.FindByEntity(ctx, entityType, reg.ID); ferr == nil {
					if uerr := s.tickets.UpdateCategory(ctx, winner.ID, category, winner.Category, now); uerr != nil {
						return uerr
					}
					winner.PreviousCategory = winner.Category
					winner.Category = category
					winner.UpgradedAt = &now
					created = winner
					return nil
				}
				// Otherwise a code collision: regenerate and retry.
			}
			return cerr
		}
		created = ticket
		return nil
	}, func(err error) bool {
		return errors.Is(err, gorm.ErrDuplicatedKey)
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return nil, ErrAllocationExhausted
		}
		return nil, err
	}
	return created, nil
}

func (s *upgradeService) notifyUpgraded(role models.Role, reg *models.Registrant, ticket *models.Ticket) {
	if s.publisher == nil {
		return
	}
	msg := models.TicketNotification{
		EntityType: role.Collection(),
		EntityID:   reg.ID,
		Email:      *reg.Email,
		TicketCode: ticket.TicketCode,
		Category:   ticket.Category,
	}
	if err := s.publisher.Publish(rabbitmq.KeyTicketUpgraded, msg); err != nil {
		s.log.Warn().Err(err).Str("registrant", reg.ID).Msg("failed to queue upgrade notification")
	}
}

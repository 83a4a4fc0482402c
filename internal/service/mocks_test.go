package service

import (
	"context"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/pkg/payment"
	"gorm.io/gorm"
)

// --- Mock RegistrantRepository ---

type mockRegistrantRepo struct {
	createFn              func(ctx context.Context, r *models.Registrant) error
	findByIDFn            func(ctx context.Context, role models.Role, id string) (*models.Registrant, error)
	findByEmailFn         func(ctx context.Context, role models.Role, email string) (*models.Registrant, error)
	findByTicketCodeFn    func(ctx context.Context, role models.Role, code string) (*models.Registrant, error)
	findByTicketCodeNumFn func(ctx context.Context, role models.Role, code int64) (*models.Registrant, error)
	listWithExtraFn       func(ctx context.Context, role models.Role, limit int) ([]models.Registrant, error)
	syncTicketFn          func(ctx context.Context, id, category, code string, codeNum *int64) error
}

func (m *mockRegistrantRepo) Create(ctx context.Context, r *models.Registrant) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	return nil
}
func (m *mockRegistrantRepo) FindByID(ctx context.Context, role models.Role, id string) (*models.Registrant, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, role, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRegistrantRepo) FindByEmail(ctx context.Context, role models.Role, email string) (*models.Registrant, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, role, email)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRegistrantRepo) FindByTicketCode(ctx context.Context, role models.Role, code string) (*models.Registrant, error) {
	if m.findByTicketCodeFn != nil {
		return m.findByTicketCodeFn(ctx, role, code)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRegistrantRepo) FindByTicketCodeNum(ctx context.Context, role models.Role, code int64) (*models.Registrant, error) {
	if m.findByTicketCodeNumFn != nil {
		return m.findByTicketCodeNumFn(ctx, role, code)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRegistrantRepo) ListWithExtra(ctx context.Context, role models.Role, limit int) ([]models.Registrant, error) {
	if m.listWithExtraFn != nil {
		return m.listWithExtraFn(ctx, role, limit)
	}
	return nil, nil
}
func (m *mockRegistrantRepo) SyncTicket(ctx context.Context, id, category, code string, codeNum *int64) error {
	if m.syncTicketFn != nil {
		return m.syncTicketFn(ctx, id, category, code, codeNum)
	}
	return nil
}
func (m *mockRegistrantRepo) SetEmailVerified(ctx context.Context, role models.Role, email string) error {
	return nil
}
func (m *mockRegistrantRepo) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	return nil
}
func (m *mockRegistrantRepo) MarkEmailFailed(ctx context.Context, id string, at time.Time) error {
	return nil
}

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	createFn         func(ctx context.Context, t *models.Ticket) error
	findByEntityFn   func(ctx context.Context, entityType, entityID string) (*models.Ticket, error)
	findByCodeFn     func(ctx context.Context, code string) (*models.Ticket, error)
	updateCategoryFn func(ctx context.Context, id uint, category, previous string, at time.Time) error
}

func (m *mockTicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return nil
}
func (m *mockTicketRepo) FindByEntity(ctx context.Context, entityType, entityID string) (*models.Ticket, error) {
	if m.findByEntityFn != nil {
		return m.findByEntityFn(ctx, entityType, entityID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockTicketRepo) FindByCode(ctx context.Context, code string) (*models.Ticket, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockTicketRepo) UpdateCategory(ctx context.Context, id uint, category, previous string, at time.Time) error {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, id, category, previous, at)
	}
	return nil
}

// --- Mock CouponRepository ---

type mockCouponRepo struct {
	createFn        func(ctx context.Context, c *models.Coupon) error
	findByCodeFn    func(ctx context.Context, code string) (*models.Coupon, error)
	consumeByCodeFn func(ctx context.Context, code, consumer string, at time.Time) (*models.Coupon, error)
	appendLogFn     func(ctx context.Context, log *models.CouponLog) error
}

func (m *mockCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}
func (m *mockCouponRepo) FindByID(ctx context.Context, id string) (*models.Coupon, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockCouponRepo) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockCouponRepo) List(ctx context.Context) ([]models.Coupon, error) { return nil, nil }
func (m *mockCouponRepo) Delete(ctx context.Context, id string) error       { return nil }
func (m *mockCouponRepo) ConsumeByCode(ctx context.Context, code, consumer string, at time.Time) (*models.Coupon, error) {
	if m.consumeByCodeFn != nil {
		return m.consumeByCodeFn(ctx, code, consumer, at)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockCouponRepo) SetUsed(ctx context.Context, id string, used bool, at time.Time) (*models.Coupon, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockCouponRepo) AppendLog(ctx context.Context, log *models.CouponLog) error {
	if m.appendLogFn != nil {
		return m.appendLogFn(ctx, log)
	}
	return nil
}

// --- Mock payment client ---

type mockPaymentClient struct {
	createOrderFn func(ctx context.Context, req payment.OrderRequest) (*payment.OrderResponse, error)
}

func (m *mockPaymentClient) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.OrderResponse, error) {
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, req)
	}
	return &payment.OrderResponse{Success: true, CheckoutURL: "https://pay.example.com/checkout"}, nil
}

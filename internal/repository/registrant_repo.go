package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"gorm.io/gorm"
)

type RegistrantRepository interface {
	Create(ctx context.Context, r *models.Registrant) error
	FindByID(ctx context.Context, role models.Role, id string) (*models.Registrant, error)
	FindByEmail(ctx context.Context, role models.Role, email string) (*models.Registrant, error)
	FindByTicketCode(ctx context.Context, role models.Role, code string) (*models.Registrant, error)
	FindByTicketCodeNum(ctx context.Context, role models.Role, code int64) (*models.Registrant, error)
	ListWithExtra(ctx context.Context, role models.Role, limit int) ([]models.Registrant, error)
	SyncTicket(ctx context.Context, id, category, code string, codeNum *int64) error
	SetEmailVerified(ctx context.Context, role models.Role, email string) error
	MarkEmailSent(ctx context.Context, id string, at time.Time) error
	MarkEmailFailed(ctx context.Context, id string, at time.Time) error
}

type registrantRepository struct {
	db *gorm.DB
}

func NewRegistrantRepository(db *gorm.DB) RegistrantRepository {
	return &registrantRepository{db: db}
}

func (r *registrantRepository) Create(ctx context.Context, reg *models.Registrant) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrantRepository) FindByID(ctx context.Context, role models.Role, id string) (*models.Registrant, error) {
	var reg models.Registrant
	err := r.db.WithContext(ctx).
		Where("role = ? AND id = ?", role, id).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrantRepository) FindByEmail(ctx context.Context, role models.Role, email string) (*models.Registrant, error) {
	var reg models.Registrant
	err := r.db.WithContext(ctx).
		Where("role = ? AND email = ?", role, email).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrantRepository) FindByTicketCode(ctx context.Context, role models.Role, code string) (*models.Registrant, error) {
	var reg models.Registrant
	err := r.db.WithContext(ctx).
		Where("role = ? AND ticket_code = ?", role, code).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrantRepository) FindByTicketCodeNum(ctx context.Context, role models.Role, code int64) (*models.Registrant, error) {
	var reg models.Registrant
	err := r.db.WithContext(ctx).
		Where("role = ? AND ticket_code_num = ?", role, code).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListWithExtra returns up to limit registrants carrying free-form fields,
// for the resolver's capped deep-inspection fallback.
func (r *registrantRepository) ListWithExtra(ctx context.Context, role models.Role, limit int) ([]models.Registrant, error) {
	var regs []models.Registrant
	err := r.db.WithContext(ctx).
		Where("role = ? AND extra IS NOT NULL", role).
		Order("id ASC").
		Limit(limit).
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// SyncTicket overwrites the registrant's ticket projection after an upgrade.
func (r *registrantRepository) SyncTicket(ctx context.Context, id, category, code string, codeNum *int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Registrant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ticket_category": category,
			"ticket_code":     code,
			"ticket_code_num": codeNum,
		}).Error
}

func (r *registrantRepository) SetEmailVerified(ctx context.Context, role models.Role, email string) error {
	return r.db.WithContext(ctx).
		Model(&models.Registrant{}).
		Where("role = ? AND email = ?", role, email).
		Update("email_verified", true).Error
}

func (r *registrantRepository) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Registrant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"email_sent_at": at,
			"email_failed":  false,
		}).Error
}

func (r *registrantRepository) MarkEmailFailed(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Registrant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"email_failed":    true,
			"email_failed_at": at,
		}).Error
}

package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, t *models.Ticket) error
	FindByEntity(ctx context.Context, entityType, entityID string) (*models.Ticket, error)
	FindByCode(ctx context.Context, code string) (*models.Ticket, error)
	UpdateCategory(ctx context.Context, id uint, category, previous string, at time.Time) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, t *models.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ticketRepository) FindByEntity(ctx context.Context, entityType, entityID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByCode(ctx context.Context, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Where("ticket_code = ?", code).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateCategory rewrites the mutable upgrade fields; the ticket code is
// deliberately untouchable here.
func (r *ticketRepository) UpdateCategory(ctx context.Context, id uint, category, previous string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"category":          category,
			"previous_category": previous,
			"upgraded_at":       at,
		}).Error
}

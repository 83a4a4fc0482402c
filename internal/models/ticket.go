package models

import "time"

// Ticket is the authoritative record of a registrant's admission right,
// created lazily on first upgrade and keyed by (entity_type, entity_id).
// The code is generated once and never changes across upgrades.
type Ticket struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	EntityType string `gorm:"type:varchar(20);not null;uniqueIndex:idx_ticket_entity" json:"entity_type"`
	EntityID   string `gorm:"type:uuid;not null;uniqueIndex:idx_ticket_entity" json:"entity_id"`

	TicketCode string `gorm:"type:varchar(32);not null;uniqueIndex" json:"ticket_code"`
	Category   string `gorm:"type:varchar(64);not null" json:"category"`

	// Upgrade provenance.
	PreviousCategory string     `gorm:"type:varchar(64)" json:"previous_category,omitempty"`
	UpgradedAt       *time.Time `json:"upgraded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Registrant is a person record in one of the five role collections.
// All collections share one table; uniqueness of email and ticket_code is
// scoped per role by partial unique indexes (see pkg/database).
type Registrant struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	Role          Role    `gorm:"type:varchar(20);not null;index" json:"role"`
	Email         *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	EmailVerified bool    `json:"email_verified"`

	TicketCode *string `gorm:"type:varchar(32)" json:"ticket_code,omitempty"`
	// Numeric projection of all-digit ticket codes, for records scanned
	// by hardware that submits codes as numbers.
	TicketCodeNum  *int64 `gorm:"index" json:"-"`
	TicketCategory string `gorm:"type:varchar(64)" json:"ticket_category"`

	AddedByAdmin bool `json:"added_by_admin"`

	EmailSentAt   *time.Time `json:"email_sent_at,omitempty"`
	EmailFailed   bool       `json:"email_failed"`
	EmailFailedAt *time.Time `json:"email_failed_at,omitempty"`

	// Extra holds the normalized free-form fields from the submitted form.
	Extra JSONMap `gorm:"type:jsonb" json:"extra,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

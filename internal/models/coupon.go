package models

import "time"

// Coupon is a single-use percentage discount code. The unused -> used
// transition happens exactly once, via an atomic conditional update.
type Coupon struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	Code     string  `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	Discount float64 `gorm:"not null" json:"discount"`

	Used   bool       `gorm:"not null;default:false" json:"used"`
	UsedAt *time.Time `json:"used_at,omitempty"`
	UsedBy string     `gorm:"type:varchar(255)" json:"used_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CouponLog is an append-only audit trail of coupon mutations.
// Writes are best-effort and never roll back the ledger operation.
type CouponLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CouponCode string    `gorm:"type:varchar(64);not null;index" json:"coupon_code"`
	Action     string    `gorm:"type:varchar(32);not null" json:"action"`
	Actor      string    `gorm:"type:varchar(255)" json:"actor,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Coupon log actions.
const (
	CouponLogCreated    = "created"
	CouponLogGenerated  = "generated"
	CouponLogConsumed   = "consumed"
	CouponLogMarkUsed   = "mark_used"
	CouponLogMarkUnused = "mark_unused"
	CouponLogDeleted    = "deleted"
)

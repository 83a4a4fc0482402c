package dto

import (
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/internal/service"
)

type AllocationResponse struct {
	Success    bool   `json:"success"`
	ID         string `json:"id"`
	TicketCode string `json:"ticketCode"`
	Existed    bool   `json:"existed"`
}

type UpgradeResponse struct {
	Success         bool   `json:"success"`
	Upgraded        bool   `json:"upgraded,omitempty"`
	TicketCode      string `json:"ticketCode,omitempty"`
	Category        string `json:"category,omitempty"`
	PaymentRequired bool   `json:"paymentRequired,omitempty"`
	CheckoutURL     string `json:"checkoutUrl,omitempty"`
}

type TicketResponse struct {
	EntityType     string         `json:"entityType"`
	ID             string         `json:"id"`
	Email          string         `json:"email,omitempty"`
	TicketCode     string         `json:"ticketCode"`
	TicketCategory string         `json:"ticketCategory"`
	Extra          map[string]any `json:"extra,omitempty"`
}

type ValidateResponse struct {
	Success bool           `json:"success"`
	Ticket  TicketResponse `json:"ticket"`
}

type CouponResponse struct {
	ID       string     `json:"id"`
	Code     string     `json:"code"`
	Discount float64    `json:"discount"`
	Used     bool       `json:"used"`
	UsedAt   *time.Time `json:"used_at,omitempty"`
	UsedBy   string     `json:"used_by,omitempty"`
}

type CouponValidationResponse struct {
	Success  bool    `json:"success"`
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount,omitempty"`
}

type OTPVerifyResponse struct {
	Success  bool `json:"success"`
	Verified bool `json:"verified"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func ToAllocationResponse(res *service.AllocationResult) AllocationResponse {
	return AllocationResponse{
		Success:    true,
		ID:         res.ID,
		TicketCode: res.TicketCode,
		Existed:    res.Existed,
	}
}

func ToUpgradeResponse(res *service.UpgradeResult) UpgradeResponse {
	return UpgradeResponse{
		Success:         true,
		Upgraded:        res.Upgraded,
		TicketCode:      res.TicketCode,
		Category:        res.Category,
		PaymentRequired: res.PaymentRequired,
		CheckoutURL:     res.CheckoutURL,
	}
}

func ToTicketResponse(id *service.TicketIdentity) TicketResponse {
	reg := id.Registrant
	resp := TicketResponse{
		EntityType:     id.EntityType,
		ID:             reg.ID,
		TicketCategory: reg.TicketCategory,
		Extra:          reg.Extra,
	}
	if reg.Email != nil {
		resp.Email = *reg.Email
	}
	if reg.TicketCode != nil {
		resp.TicketCode = *reg.TicketCode
	}
	return resp
}

func ToCouponResponse(c *models.Coupon) CouponResponse {
	return CouponResponse{
		ID:       c.ID,
		Code:     c.Code,
		Discount: c.Discount,
		Used:     c.Used,
		UsedAt:   c.UsedAt,
		UsedBy:   c.UsedBy,
	}
}

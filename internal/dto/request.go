package dto

type UpgradeRequest struct {
	EntityType string  `json:"entityType"`
	EntityID   string  `json:"entityId"`
	Category   string  `json:"newCategory"`
	Amount     float64 `json:"amount"`
	Email      string  `json:"email"`
	TxID       string  `json:"txId"`
	CouponCode string  `json:"couponCode"`
}

type ScanRequest struct {
	Payload string `json:"payload"`
}

type CreateCouponRequest struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Actor    string  `json:"actor"`
}

type GenerateCouponsRequest struct {
	Count    int     `json:"count"`
	Discount float64 `json:"discount"`
	Actor    string  `json:"actor"`
}

type ValidateCouponRequest struct {
	Code string `json:"code"`
}

type ConsumeCouponRequest struct {
	Code     string `json:"code"`
	Consumer string `json:"consumer"`
}

type OTPRequest struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

type OTPVerifyRequest struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Code  string `json:"code"`
}

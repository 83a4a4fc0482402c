package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/event-registration-service/internal/dto"
	"github.com/Eursukkul/event-registration-service/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CouponHandler struct {
	coupons service.CouponService
}

func NewCouponHandler(coupons service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo) {
	coupons := e.Group("/api/v1/coupons")
	coupons.GET("", h.List)
	coupons.POST("", h.Create)
	coupons.POST("/generate", h.Generate)
	coupons.POST("/validate", h.Validate)
	coupons.POST("/consume", h.Consume)
	coupons.POST("/:id/use", h.MarkUsed)
	coupons.POST("/:id/unuse", h.MarkUnused)
	coupons.DELETE("/:id", h.Delete)
}

func (h *CouponHandler) List(c echo.Context) error {
	coupons, err := h.coupons.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CouponResponse, len(coupons))
	for i := range coupons {
		resp[i] = dto.ToCouponResponse(&coupons[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CouponHandler) Create(c echo.Context) error {
	var req dto.CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	coupon, err := h.coupons.Create(c.Request().Context(), req.Code, req.Discount, req.Actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadDiscount):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return echo.NewHTTPError(http.StatusConflict, "coupon code already exists")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, dto.ToCouponResponse(coupon))
}

func (h *CouponHandler) Generate(c echo.Context) error {
	var req dto.GenerateCouponsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Count < 1 || req.Count > 1000 {
		return echo.NewHTTPError(http.StatusBadRequest, "count must be between 1 and 1000")
	}

	coupons, err := h.coupons.Generate(c.Request().Context(), req.Count, req.Discount, req.Actor)
	if err != nil {
		if errors.Is(err, service.ErrBadDiscount) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CouponResponse, len(coupons))
	for i := range coupons {
		resp[i] = dto.ToCouponResponse(&coupons[i])
	}
	return c.JSON(http.StatusCreated, resp)
}

// Validate is the read-only peek; it never spends the coupon.
func (h *CouponHandler) Validate(c echo.Context) error {
	var req dto.ValidateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.coupons.Validate(c.Request().Context(), req.Code)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.CouponValidationResponse{
		Success:  true,
		Valid:    res.Valid,
		Discount: res.Discount,
	})
}

// Consume atomically spends a coupon; concurrent losers get 422.
func (h *CouponHandler) Consume(c echo.Context) error {
	var req dto.ConsumeCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.coupons.Consume(c.Request().Context(), req.Code, req.Consumer)
	if err != nil {
		if errors.Is(err, service.ErrCouponInvalid) {
			return c.JSON(http.StatusUnprocessableEntity, dto.CouponValidationResponse{Success: true, Valid: false})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.CouponValidationResponse{
		Success:  true,
		Valid:    true,
		Discount: res.Discount,
	})
}

func (h *CouponHandler) MarkUsed(c echo.Context) error {
	coupon, err := h.coupons.MarkUsed(c.Request().Context(), c.Param("id"), c.QueryParam("actor"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "coupon not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

func (h *CouponHandler) MarkUnused(c echo.Context) error {
	coupon, err := h.coupons.MarkUnused(c.Request().Context(), c.Param("id"), c.QueryParam("actor"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "coupon not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

func (h *CouponHandler) Delete(c echo.Context) error {
	err := h.coupons.Delete(c.Request().Context(), c.Param("id"), c.QueryParam("actor"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "coupon not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

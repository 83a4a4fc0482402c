package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/event-registration-service/internal/dto"
	"github.com/Eursukkul/event-registration-service/internal/service"
	"github.com/labstack/echo/v4"
)

type OTPHandler struct {
	otp service.OTPService
}

func NewOTPHandler(otp service.OTPService) *OTPHandler {
	return &OTPHandler{otp: otp}
}

func (h *OTPHandler) RegisterRoutes(e *echo.Echo) {
	otp := e.Group("/api/v1/otp")
	otp.POST("/request", h.Request)
	otp.POST("/verify", h.Verify)
}

func (h *OTPHandler) Request(c echo.Context) error {
	var req dto.OTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := h.otp.Request(c.Request().Context(), req.Role, req.Email); err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *OTPHandler) Verify(c echo.Context) error {
	var req dto.OTPVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and code are required")
	}

	verified, err := h.otp.Verify(c.Request().Context(), req.Role, req.Email, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.OTPVerifyResponse{Success: true, Verified: verified})
}

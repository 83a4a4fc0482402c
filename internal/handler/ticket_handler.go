package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/event-registration-service/internal/dto"
	"github.com/Eursukkul/event-registration-service/internal/service"
	"github.com/Eursukkul/event-registration-service/pkg/badge"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	upgrades service.UpgradeService
	resolver service.ResolverService
	badges   badge.Renderer
}

func NewTicketHandler(upgrades service.UpgradeService, resolver service.ResolverService, badges badge.Renderer) *TicketHandler {
	return &TicketHandler{upgrades: upgrades, resolver: resolver, badges: badges}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo) {
	tickets := e.Group("/api/v1/tickets")
	tickets.POST("/upgrade", h.Upgrade)
	tickets.POST("/validate", h.Validate)
	tickets.POST("/scan", h.Scan)
}

func (h *TicketHandler) Upgrade(c echo.Context) error {
	var req dto.UpgradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.EntityType == "" || req.EntityID == "" || req.Category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "entityType, entityId and newCategory are required")
	}

	res, err := h.upgrades.Upgrade(c.Request().Context(), service.UpgradeInput{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Category:   req.Category,
		Amount:     req.Amount,
		Email:      req.Email,
		TxID:       req.TxID,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRole):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRegistrantNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrCouponInvalid):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToUpgradeResponse(res))
}

// Validate resolves a raw scan payload to a ticket identity. Unparseable
// payloads are 400, unresolved identities 404 — absence is never a 500.
func (h *TicketHandler) Validate(c echo.Context) error {
	identity, err := h.resolve(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ValidateResponse{
		Success: true,
		Ticket:  dto.ToTicketResponse(identity),
	})
}

// Scan resolves the payload and responds with the rendered badge artifact.
func (h *TicketHandler) Scan(c echo.Context) error {
	identity, err := h.resolve(c)
	if err != nil {
		return err
	}

	artifact, err := h.badges.Render(c.Request().Context(), identity.EntityType, identity.Registrant, badge.ModeBadge)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "badge rendering failed")
	}
	return c.Blob(http.StatusOK, "text/html", artifact)
}

func (h *TicketHandler) resolve(c echo.Context) (*service.TicketIdentity, error) {
	var req dto.ScanRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Payload == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "payload is required")
	}

	identity, err := h.resolver.Resolve(c.Request().Context(), req.Payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadPayload):
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTicketNotFound):
			return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return identity, nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/event-registration-service/internal/dto"
	"github.com/Eursukkul/event-registration-service/internal/service"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	allocator service.AllocatorService
}

func NewRegistrationHandler(allocator service.AllocatorService) *RegistrationHandler {
	return &RegistrationHandler{allocator: allocator}
}

func (h *RegistrationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/registrants/:role", h.Register)
}

// Register accepts an arbitrary form body; field names are normalized and
// optionally whitelisted inside the allocator. Re-submitting a known email
// returns the existing ticket instead of a new one.
func (h *RegistrationHandler) Register(c echo.Context) error {
	var form map[string]any
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	addedByAdmin := false
	if v, ok := form["added_by_admin"].(bool); ok {
		addedByAdmin = v
		delete(form, "added_by_admin")
	}

	res, err := h.allocator.Allocate(c.Request().Context(), c.Param("role"), form, addedByAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRole):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAllocationExhausted):
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	status := http.StatusCreated
	if res.Existed {
		status = http.StatusOK
	}
	return c.JSON(status, dto.ToAllocationResponse(res))
}

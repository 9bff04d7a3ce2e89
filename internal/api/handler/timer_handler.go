package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timekeep/timer-system/internal/api/middleware"
	"github.com/timekeep/timer-system/internal/core/ports"
)

// TimerHandler handles the REST side of timers. Live state flows over the
// WebSocket; these endpoints only create and stop records.
type TimerHandler struct {
	timers ports.TimerService
}

func NewTimerHandler(timers ports.TimerService) *TimerHandler {
	return &TimerHandler{timers: timers}
}

// Create handles POST /api/timers.
func (h *TimerHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req createTimerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	timer, err := h.timers.Start(c.Request().Context(), user.ID, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createTimerResponse{ID: timer.ID})
}

// Stop handles POST /api/timers/:id/stop.
func (h *TimerHandler) Stop(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.timers.Stop(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /api/timers. `?isActive=true` narrows to running timers.
func (h *TimerHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	activeOnly := c.QueryParam("isActive") == "true"
	timers, err := h.timers.List(c.Request().Context(), user.ID, activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimerResponses(timers))
}

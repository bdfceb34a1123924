package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"digimart/internal/auth"
	"digimart/internal/errors"
	"digimart/internal/service"
)

// DashboardHandler handles the role-dependent dashboard read.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get godoc
// @Summary Get the caller's dashboard
// @Description Admins receive the user base and catalog; buyers receive their purchase rows.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	view, err := h.dashboardService.View(c.Request().Context(), user)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// The variant is resolved once here; the wire shape keeps the original
	// isAdmin discriminator.
	if view.IsAdmin {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"isAdmin":  true,
			"users":    view.Admin.Users,
			"products": view.Admin.Products,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"isAdmin":   false,
		"purchases": view.User.Purchases,
	})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
)

// ActivityHandler exposes the authentication audit trail to admins.
type ActivityHandler struct {
	activity ports.ActivityLog
}

func NewActivityHandler(activity ports.ActivityLog) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Recent lists the newest audit entries.
//
// @Summary      Recent activity
// @Tags         admin
// @Produce      json
// @Param        limit  query  int  false  "Maximum entries (default 50)"
// @Success      200  {array}  domain.ActivityEntry
// @Router       /admin/activity [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	entries, err := h.activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

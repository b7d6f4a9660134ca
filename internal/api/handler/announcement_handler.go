package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentms/portal-gateway/internal/api/middleware"
	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
)

// AnnouncementHandler manages the read-marks record. The announcements
// themselves belong to the backend; only the per-user read state lives here.
type AnnouncementHandler struct {
	marks ports.ReadMarkStore
}

func NewAnnouncementHandler(marks ports.ReadMarkStore) *AnnouncementHandler {
	return &AnnouncementHandler{marks: marks}
}

type readMarksResponse struct {
	IDs []int64 `json:"ids"`
}

type markReadRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// ReadIDs lists the announcement IDs the user has already read.
//
// @Summary      Read announcement IDs
// @Tags         announcements
// @Produce      json
// @Success      200  {object}  readMarksResponse
// @Router       /announcements/read [get]
func (h *AnnouncementHandler) ReadIDs(c echo.Context) error {
	sid := middleware.SessionIDFromContext(c)
	if sid == "" {
		return domain.ErrNoSession
	}

	ids, err := h.marks.ReadIDs(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readMarksResponse{IDs: ids})
}

// MarkRead records announcement IDs as read.
//
// @Summary      Mark announcements read
// @Tags         announcements
// @Accept       json
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /announcements/read [post]
func (h *AnnouncementHandler) MarkRead(c echo.Context) error {
	sid := middleware.SessionIDFromContext(c)
	if sid == "" {
		return domain.ErrNoSession
	}

	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.marks.MarkRead(c.Request().Context(), sid, req.IDs...); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

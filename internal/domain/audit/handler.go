package audit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/karte/emr/internal/platform/auth"
	"github.com/karte/emr/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "therapist"))
	g.GET("/audit/modifications", h.ListModifications)
}

type listResponse struct {
	*pagination.Response
	Warnings []Warning `json:"warnings,omitempty"`
}

func (h *Handler) ListModifications(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rows, warnings, err := h.svc.ModificationLog(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build modification log")
	}

	page := pagination.FromContext(c)
	start, end := page.Slice(len(rows))
	items := rows[start:end]
	if items == nil {
		items = []LogEntry{}
	}
	return c.JSON(http.StatusOK, listResponse{
		Response: pagination.NewResponse(items, len(rows), page.Limit, page.Offset),
		Warnings: warnings,
	})
}

func parseFilter(c echo.Context) (Filter, error) {
	f := Filter{SearchText: c.QueryParam("q")}

	switch t := c.QueryParam("type"); t {
	case "", string(EventEdit), string(EventDelete):
		f.Type = EventType(t)
	default:
		return Filter{}, fmt.Errorf("type must be edit or delete")
	}

	if v := c.QueryParam("from"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Filter{}, fmt.Errorf("from must be a date in YYYY-MM-DD format")
		}
		f.From = &ts
	}
	if v := c.QueryParam("to"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Filter{}, fmt.Errorf("to must be a date in YYYY-MM-DD format")
		}
		// Inclusive end of day.
		end := ts.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	return f, nil
}

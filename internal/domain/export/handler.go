package export

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/karte/emr/internal/domain/patient"
	"github.com/karte/emr/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "therapist"))
	g.GET("/patients/:id/export", h.ExportChart)
}

func (h *Handler) ExportChart(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	format, ok := ParseFormat(c.QueryParam("format"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "format must be json, csv or text")
	}

	doc, err := h.svc.BuildDocument(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build export")
	}

	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		if err := WriteCSV(&buf, doc); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render export")
		}
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case FormatText:
		if err := WriteText(&buf, doc); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render export")
		}
		return c.Blob(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	default:
		if err := WriteJSON(&buf, doc); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render export")
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, buf.Bytes())
	}
}

package chart

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

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
	g.POST("/patients/:id/entries", h.AddEntry)
	g.GET("/patients/:id/entries", h.ListEntries)
	g.GET("/patients/:id/entries/:entryID", h.GetEntry)
	g.PUT("/patients/:id/entries/:entryID", h.EditEntry)
	g.DELETE("/patients/:id/entries/:entryID", h.DeleteEntry)
	g.GET("/patients/:id/entries/:entryID/revisions", h.ListRevisions)
}

func (h *Handler) AddEntry(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var in CreateEntryInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.AddEntry(c.Request().Context(), patientID, in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetEntry(c echo.Context) error {
	patientID, entryID, err := pathIDs(c)
	if err != nil {
		return err
	}
	e, err := h.svc.GetEntry(c.Request().Context(), patientID, entryID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) ListEntries(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	items, err := h.svc.ListEntries(c.Request().Context(), patientID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) EditEntry(c echo.Context) error {
	patientID, entryID, err := pathIDs(c)
	if err != nil {
		return err
	}
	var in EditEntryInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.EditEntry(c.Request().Context(), patientID, entryID, in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteEntry(c echo.Context) error {
	patientID, entryID, err := pathIDs(c)
	if err != nil {
		return err
	}
	var in DeleteEntryInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.DeleteEntry(c.Request().Context(), patientID, entryID, in); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListRevisions(c echo.Context) error {
	patientID, entryID, err := pathIDs(c)
	if err != nil {
		return err
	}
	revs, err := h.svc.ListRevisions(c.Request().Context(), patientID, entryID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, revs)
}

func pathIDs(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	entryID, err := uuid.Parse(c.Param("entryID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid entry id")
	}
	return patientID, entryID, nil
}

// httpError maps domain errors onto HTTP status codes.
func httpError(err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve)
	case IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

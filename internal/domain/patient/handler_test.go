package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHandlerCreateAndGetPatient(t *testing.T) {
	h := NewHandler(NewService(NewMemoryRepo()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients",
		strings.NewReader(`{"name":"山田太郎","name_kana":"ヤマダタロウ","first_visit_date":"2024-01-01"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.CreatePatient(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+created.ID.String(), nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())
	if err := h.GetPatient(c); err != nil {
		t.Fatalf("GetPatient: %v", err)
	}
	var got Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != "山田太郎" {
		t.Errorf("unexpected name %q", got.Name)
	}
}

func TestHandlerGetPatientNotFound(t *testing.T) {
	h := NewHandler(NewService(NewMemoryRepo()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandlerCreatePatientRejectsBadDate(t *testing.T) {
	h := NewHandler(NewService(NewMemoryRepo()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients",
		strings.NewReader(`{"name":"山田太郎","first_visit_date":"January 1st"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.CreatePatient(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(c echo.Context, roles ...string) echo.Context {
	ctx := context.WithValue(c.Request().Context(), UserRolesKey, roles)
	c.SetRequest(c.Request().WithContext(ctx))
	return c
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		granted  []string
		required []string
		wantCode int
	}{
		{"exact match", []string{"therapist"}, []string{"therapist"}, http.StatusOK},
		{"admin passes everything", []string{"admin"}, []string{"reception"}, http.StatusOK},
		{"one of several", []string{"reception"}, []string{"therapist", "reception"}, http.StatusOK},
		{"no match", []string{"reception"}, []string{"therapist"}, http.StatusForbidden},
		{"no roles at all", nil, []string{"therapist"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := contextWithRoles(e.NewContext(req, rec), tc.granted...)

			err := RequireRole(tc.required...)(okHandler)(c)
			if tc.wantCode == http.StatusOK {
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != tc.wantCode {
				t.Fatalf("expected %d, got %v", tc.wantCode, err)
			}
		})
	}
}

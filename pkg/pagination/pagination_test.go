package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		target string
		want   Params
	}{
		{"/", Params{Limit: DefaultLimit, Offset: 0}},
		{"/?limit=50&offset=10", Params{Limit: 50, Offset: 10}},
		{"/?limit=9999", Params{Limit: MaxLimit, Offset: 0}},
		{"/?limit=-5&offset=-3", Params{Limit: DefaultLimit, Offset: 0}},
		{"/?limit=abc", Params{Limit: DefaultLimit, Offset: 0}},
	}
	for _, tc := range cases {
		if got := paramsFor(tc.target); got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.target, got, tc.want)
		}
	}
}

func TestSlice(t *testing.T) {
	p := Params{Limit: 10, Offset: 5}
	start, end := p.Slice(8)
	if start != 5 || end != 8 {
		t.Errorf("expected [5,8), got [%d,%d)", start, end)
	}

	start, end = p.Slice(3)
	if start != 3 || end != 3 {
		t.Errorf("offset past the end must yield an empty page, got [%d,%d)", start, end)
	}
}

func TestSQL(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if got := p.SQL(); got != "LIMIT 20 OFFSET 40" {
		t.Errorf("unexpected clause %q", got)
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]int{1, 2, 3}, 30, 10, 0)
	if !resp.HasMore {
		t.Error("expected HasMore with 30 total and first page of 10")
	}
	resp = NewResponse([]int{1}, 5, 10, 0)
	if resp.HasMore {
		t.Error("expected HasMore false when the page covers the total")
	}
}

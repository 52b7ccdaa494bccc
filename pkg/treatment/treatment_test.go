package treatment

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestElapsed_SameDay(t *testing.T) {
	s := Elapsed(date(2024, 1, 1), date(2024, 1, 1))
	if s.Weeks != 0 || s.Days != 0 || s.BeforeFirstVisit {
		t.Errorf("expected 0w0d, got %v", s)
	}
}

func TestElapsed_OneWeekTwoDays(t *testing.T) {
	s := Elapsed(date(2024, 1, 1), date(2024, 1, 10))
	if s.Weeks != 1 || s.Days != 2 {
		t.Errorf("expected 1w2d, got %v", s)
	}
}

func TestElapsed_ExactWeeks(t *testing.T) {
	s := Elapsed(date(2024, 1, 1), date(2024, 1, 29))
	if s.Weeks != 4 || s.Days != 0 {
		t.Errorf("expected 4w0d, got %v", s)
	}
}

func TestElapsed_BeforeFirstVisitClampsToZero(t *testing.T) {
	s := Elapsed(date(2024, 1, 10), date(2024, 1, 5))
	if s.Weeks != 0 || s.Days != 0 {
		t.Errorf("expected clamp to 0w0d, got %v", s)
	}
	if !s.BeforeFirstVisit {
		t.Error("expected BeforeFirstVisit to be set")
	}
}

func TestElapsed_IgnoresTimeOfDay(t *testing.T) {
	first := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	visit := time.Date(2024, 1, 10, 0, 1, 0, 0, time.UTC)
	s := Elapsed(first, visit)
	if s.Weeks != 1 || s.Days != 2 {
		t.Errorf("expected 1w2d regardless of clock time, got %v", s)
	}
}

func TestElapsed_CrossesDSTBoundary(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	first := time.Date(2024, 3, 1, 9, 0, 0, 0, loc)
	visit := time.Date(2024, 4, 5, 9, 0, 0, 0, loc)
	s := Elapsed(first, visit)
	if s.TotalDays() != 35 {
		t.Errorf("expected 35 days, got %d", s.TotalDays())
	}
}

func TestElapsed_Identity(t *testing.T) {
	first := date(2023, 6, 15)
	for offset := 0; offset < 400; offset++ {
		visit := first.AddDate(0, 0, offset)
		s := Elapsed(first, visit)
		if s.TotalDays() != offset {
			t.Fatalf("offset %d: weeks*7+days = %d", offset, s.TotalDays())
		}
		if s.Days < 0 || s.Days > 6 {
			t.Fatalf("offset %d: days out of range: %d", offset, s.Days)
		}
	}
}

func TestSpan_String(t *testing.T) {
	s := Span{Weeks: 3, Days: 4}
	if s.String() != "3w4d" {
		t.Errorf("expected 3w4d, got %s", s.String())
	}
}

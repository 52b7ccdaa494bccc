// Package treatment computes elapsed treatment time between a patient's
// first visit and a later chart entry, expressed as whole weeks plus
// remainder days. Every display and export surface uses the same math.
package treatment

import (
	"fmt"
	"time"
)

// Span is the elapsed treatment time at a given visit.
//
// Weeks*7 + Days always equals the number of whole calendar days between
// the first visit and the visit date. When the visit date precedes the
// first visit the span clamps to zero and BeforeFirstVisit is set; negative
// spans never flow into display or export.
type Span struct {
	Weeks            int  `json:"weeks"`
	Days             int  `json:"days"`
	BeforeFirstVisit bool `json:"before_first_visit,omitempty"`
}

// Elapsed returns the treatment span between firstVisit and visit.
// Both arguments are truncated to their calendar date; time-of-day and
// timezone offsets do not affect the result.
func Elapsed(firstVisit, visit time.Time) Span {
	days := daysBetween(firstVisit, visit)
	if days < 0 {
		return Span{BeforeFirstVisit: true}
	}
	return Span{Weeks: days / 7, Days: days % 7}
}

// TotalDays returns Weeks*7 + Days.
func (s Span) TotalDays() int {
	return s.Weeks*7 + s.Days
}

func (s Span) String() string {
	return fmt.Sprintf("%dw%dd", s.Weeks, s.Days)
}

// daysBetween counts whole calendar days from a to b, negative when b is
// earlier. Dates are normalized to UTC midnight so DST transitions in the
// inputs' locations cannot skew the count.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

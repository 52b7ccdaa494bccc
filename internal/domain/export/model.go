package export

import (
	"time"

	"github.com/karte/emr/internal/domain/chart"
	"github.com/karte/emr/internal/domain/patient"
	"github.com/karte/emr/pkg/treatment"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat maps a query-string value to a Format. Empty defaults to JSON.
func ParseFormat(v string) (Format, bool) {
	switch Format(v) {
	case "":
		return FormatJSON, true
	case FormatJSON, FormatCSV, FormatText:
		return Format(v), true
	default:
		return "", false
	}
}

// Record is one chart entry enriched with the elapsed treatment span from the
// patient's first visit. Deleted entries are carried with their flag intact;
// an export is a faithful copy of the chart, not a cleaned-up one.
type Record struct {
	Entry   *chart.Entry   `json:"entry"`
	Elapsed treatment.Span `json:"elapsed"`
}

// Document is a full chart export for one patient.
type Document struct {
	Patient     *patient.Patient `json:"patient"`
	GeneratedAt time.Time        `json:"generated_at"`
	Records     []Record         `json:"records"`
}

package audit

import (
	"sort"
	"strings"

	"github.com/karte/emr/internal/domain/chart"
)

// BuildLog derives the modification/deletion listing from the given patient
// records. It is a pure projection: no stored state, safe for any number of
// concurrent callers.
//
// One row is emitted per entry that has been edited or deleted. An entry
// that was edited and later deleted emits only the delete row: deletion
// supersedes modification in this view. The edit itself stays reconstructable
// from the entry's revisions.
func BuildLog(records []PatientRecord, f Filter) ([]LogEntry, []Warning) {
	var rows []LogEntry
	var warnings []Warning

	for _, rec := range records {
		if rec.Patient == nil {
			continue
		}
		for _, e := range rec.Entries {
			if e == nil {
				continue
			}
			row, warn := projectEntry(rec, e)
			if warn != nil {
				warnings = append(warnings, *warn)
				continue
			}
			if row == nil {
				continue
			}
			if matches(*row, f) {
				rows = append(rows, *row)
			}
		}
	}

	// Most recent first; ties broken by entry id so identical timestamps
	// still produce a stable order.
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].EventTimestamp.Equal(rows[j].EventTimestamp) {
			return rows[i].EventTimestamp.After(rows[j].EventTimestamp)
		}
		return rows[i].EntryID.String() < rows[j].EntryID.String()
	})

	return rows, warnings
}

func projectEntry(rec PatientRecord, e *chart.Entry) (*LogEntry, *Warning) {
	switch {
	case e.IsDeleted:
		if e.DeletedAt == nil || e.DeleteReason == nil {
			return nil, &Warning{
				PatientID: rec.Patient.ID,
				EntryID:   e.ID,
				Message:   "deleted entry is missing deletion metadata",
			}
		}
		return &LogEntry{
			PatientID:       rec.Patient.ID,
			PatientName:     rec.Patient.Name,
			PatientNameKana: rec.Patient.NameKana,
			EntryID:         e.ID,
			EntryDate:       e.Date,
			EventTimestamp:  *e.DeletedAt,
			Type:            EventDelete,
			Reason:          *e.DeleteReason,
			Content:         e.Content,
			NextAppointment: e.NextAppointment,
		}, nil
	case e.ModifiedAt != nil:
		if e.ModifiedReason == nil {
			return nil, &Warning{
				PatientID: rec.Patient.ID,
				EntryID:   e.ID,
				Message:   "modified entry is missing a modification reason",
			}
		}
		return &LogEntry{
			PatientID:       rec.Patient.ID,
			PatientName:     rec.Patient.Name,
			PatientNameKana: rec.Patient.NameKana,
			EntryID:         e.ID,
			EntryDate:       e.Date,
			EventTimestamp:  *e.ModifiedAt,
			Type:            EventEdit,
			Reason:          *e.ModifiedReason,
			Content:         e.Content,
			NextAppointment: e.NextAppointment,
		}, nil
	default:
		return nil, nil
	}
}

func matches(row LogEntry, f Filter) bool {
	if f.Type != "" && row.Type != f.Type {
		return false
	}
	if f.From != nil && row.EventTimestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && row.EventTimestamp.After(*f.To) {
		return false
	}
	if f.SearchText != "" {
		q := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(row.PatientName), q) &&
			!strings.Contains(strings.ToLower(row.PatientNameKana), q) &&
			!strings.Contains(strings.ToLower(row.Reason), q) &&
			!strings.Contains(strings.ToLower(row.Content), q) {
			return false
		}
	}
	return true
}

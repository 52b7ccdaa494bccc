package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const dateLayout = "2006-01-02"

// WriteJSON streams the document as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

var csvHeader = []string{
	"date", "elapsed_weeks", "elapsed_days", "before_first_visit", "content", "therapy_methods",
	"next_appointment", "modified_at", "modified_reason", "deleted", "deleted_at", "delete_reason",
}

// WriteCSV streams the document's records as one CSV row per entry.
func WriteCSV(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range doc.Records {
		e := rec.Entry
		row := []string{
			e.Date.Format(dateLayout),
			strconv.Itoa(rec.Elapsed.Weeks),
			strconv.Itoa(rec.Elapsed.Days),
			strconv.FormatBool(rec.Elapsed.BeforeFirstVisit),
			e.Content,
			strings.Join(e.TherapyMethods, ";"),
			"",
			"",
			"",
			strconv.FormatBool(e.IsDeleted),
			"",
			"",
		}
		if e.NextAppointment != nil {
			row[6] = e.NextAppointment.Format(dateLayout)
		}
		if e.ModifiedAt != nil {
			row[7] = e.ModifiedAt.Format(dateLayout)
		}
		if e.ModifiedReason != nil {
			row[8] = *e.ModifiedReason
		}
		if e.DeletedAt != nil {
			row[10] = e.DeletedAt.Format(dateLayout)
		}
		if e.DeleteReason != nil {
			row[11] = *e.DeleteReason
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText renders a plain-text chart printout.
func WriteText(w io.Writer, doc *Document) error {
	p := doc.Patient
	if _, err := fmt.Fprintf(w, "%s (%s)\n初診日: %s\n\n",
		p.Name, p.NameKana, p.FirstVisitDate.Format(dateLayout)); err != nil {
		return err
	}
	for _, rec := range doc.Records {
		e := rec.Entry
		// A visit dated before the first visit prints its flag, never a
		// made-up zero duration.
		header := fmt.Sprintf("%s  経過 %d週%d日", e.Date.Format(dateLayout), rec.Elapsed.Weeks, rec.Elapsed.Days)
		if rec.Elapsed.BeforeFirstVisit {
			header = fmt.Sprintf("%s  【初診日前の記録】", e.Date.Format(dateLayout))
		}
		if e.IsDeleted {
			header += "  【削除済み】"
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, e.Content); err != nil {
			return err
		}
		if len(e.TherapyMethods) > 0 {
			if _, err := fmt.Fprintf(w, "施術: %s\n", strings.Join(e.TherapyMethods, "、")); err != nil {
				return err
			}
		}
		if e.NextAppointment != nil {
			if _, err := fmt.Fprintf(w, "次回予約: %s\n", e.NextAppointment.Format(dateLayout)); err != nil {
				return err
			}
		}
		if e.IsDeleted && e.DeleteReason != nil {
			if _, err := fmt.Fprintf(w, "削除理由: %s\n", *e.DeleteReason); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

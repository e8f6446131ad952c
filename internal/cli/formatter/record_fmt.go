package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
)

// FormatRecord renders a patient record as a boxed summary.
func FormatRecord(rec *domain.PatientRecord, now time.Time) string {
	var b strings.Builder
	row := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			value = Dim("-")
		}
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-16s", label)), value)
	}

	row("Gender", string(rec.Gender))
	row("Age", rec.AgeString())
	row("Diagnosis", rec.Diagnosis)
	row("Operation", rec.OperationDescription)
	row("Operation date", withRelative(rec.OperationDate, now))
	row("Treatment", rec.TreatmentDetails)
	row("Treatment start", withRelative(rec.TreatmentStartDate, now))
	if !rec.Timestamp.IsZero() {
		row("Recorded", HumanTimestamp(rec.Timestamp, now))
	}

	return RenderBox("Patient", strings.TrimRight(b.String(), "\n"))
}

func withRelative(date string, now time.Time) string {
	d, err := domain.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return date
	}
	days := int(calendarDay(now).Sub(calendarDay(d)).Hours() / 24)
	return fmt.Sprintf("%s %s", date, Dim("("+DaysPhrase(days)+")"))
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatRecordList renders the saved-record filenames, or the placeholder
// when the directory holds none.
func FormatRecordList(names []string) string {
	if len(names) == 0 || (len(names) == 1 && names[0] == domain.NoSavedFilesPlaceholder) {
		return Dim(domain.NoSavedFilesPlaceholder) + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Saved records"))
	b.WriteString("\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %s\n", n)
	}
	return b.String()
}

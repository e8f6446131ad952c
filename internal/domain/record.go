package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Gender is one of a closed set of intake options. The set is enforced by the
// input surfaces; saved documents may carry any string.
type Gender string

const (
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderOther          Gender = "Other"
	GenderPreferNotToSay Gender = "Prefer not to say"
)

// ValidGenders lists the selectable genders in display order.
var ValidGenders = []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}

const (
	MinAge = 0
	MaxAge = 150
)

// NoSavedFilesPlaceholder is shown in place of an empty saved-record list.
const NoSavedFilesPlaceholder = "No saved files found"

// PatientRecord holds the seven intake fields plus the creation instant.
// Age is nil when unknown.
type PatientRecord struct {
	Timestamp            time.Time
	Gender               Gender
	Age                  *int
	Diagnosis            string
	OperationDescription string
	OperationDate        string
	TreatmentDetails     string
	TreatmentStartDate   string
}

// NewPatientRecord copies the intake fields and stamps the record with now.
func NewPatientRecord(fields PatientRecord, now time.Time) *PatientRecord {
	rec := fields
	rec.Timestamp = now
	return &rec
}

// ParseGender validates s against ValidGenders.
func ParseGender(s string) (Gender, error) {
	for _, g := range ValidGenders {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
}

// ParseAge parses an age string. Blank yields nil.
func ParseAge(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAge, s)
	}
	if err := ValidateAge(n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ValidateAge enforces MinAge..MaxAge inclusive.
func ValidateAge(n int) error {
	if n < MinAge || n > MaxAge {
		return fmt.Errorf("%w: %d", ErrInvalidAge, n)
	}
	return nil
}

// AgeString renders the age for display and prompts. Nil renders empty.
func (r *PatientRecord) AgeString() string {
	if r.Age == nil {
		return ""
	}
	return strconv.Itoa(*r.Age)
}

// Validate checks the collect-and-advise pathway: every intake field must be
// present and both dates must parse. Date ordering is not checked.
func (r *PatientRecord) Validate() error {
	if strings.TrimSpace(string(r.Gender)) == "" ||
		r.Age == nil ||
		strings.TrimSpace(r.Diagnosis) == "" ||
		strings.TrimSpace(r.OperationDescription) == "" ||
		strings.TrimSpace(r.OperationDate) == "" ||
		strings.TrimSpace(r.TreatmentDetails) == "" ||
		strings.TrimSpace(r.TreatmentStartDate) == "" {
		return ErrIncompleteInput
	}
	_, _, err := r.Dates()
	return err
}

// Dates parses the operation and treatment start dates.
func (r *PatientRecord) Dates() (operation, treatmentStart time.Time, err error) {
	operation, err = ParseDate(strings.TrimSpace(r.OperationDate))
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateError{Field: "operation date", Value: r.OperationDate, Err: err}
	}
	treatmentStart, err = ParseDate(strings.TrimSpace(r.TreatmentStartDate))
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateError{Field: "treatment start date", Value: r.TreatmentStartDate, Err: err}
	}
	return operation, treatmentStart, nil
}

// ── JSON document ───────────────────────────────────────────────────────────

type operationDocument struct {
	Description string `json:"description"`
	Date        string `json:"date"`
}

type treatmentDocument struct {
	Details   string `json:"details"`
	StartDate string `json:"start_date"`
}

type recordDocument struct {
	Timestamp string            `json:"timestamp"`
	Gender    string            `json:"gender"`
	Age       *int              `json:"age"`
	Diagnosis string            `json:"diagnosis"`
	Operation operationDocument `json:"operation"`
	Treatment treatmentDocument `json:"treatment"`
}

// timestampLayouts are tried in order when decoding. The second matches
// documents written without a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// MarshalJSON writes the nested document shape with age as null when unknown.
func (r PatientRecord) MarshalJSON() ([]byte, error) {
	doc := recordDocument{
		Gender:    string(r.Gender),
		Age:       r.Age,
		Diagnosis: r.Diagnosis,
		Operation: operationDocument{Description: r.OperationDescription, Date: r.OperationDate},
		Treatment: treatmentDocument{Details: r.TreatmentDetails, StartDate: r.TreatmentStartDate},
	}
	if !r.Timestamp.IsZero() {
		doc.Timestamp = r.Timestamp.Format(time.RFC3339Nano)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeRecord writes rec as a JSON document, indented when indent is set.
// Markup and non-ASCII text are kept verbatim; json.Marshal would re-escape
// the output of MarshalJSON.
func EncodeRecord(rec *PatientRecord, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON accepts partial documents. Missing nested objects or keys
// decode to empty strings, and a missing, null, or blank age decodes to nil.
func (r *PatientRecord) UnmarshalJSON(data []byte) error {
	var doc struct {
		Timestamp string             `json:"timestamp"`
		Gender    string             `json:"gender"`
		Age       json.RawMessage    `json:"age"`
		Diagnosis string             `json:"diagnosis"`
		Operation *operationDocument `json:"operation"`
		Treatment *treatmentDocument `json:"treatment"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	age, err := decodeAge(doc.Age)
	if err != nil {
		return err
	}

	*r = PatientRecord{
		Gender:    Gender(doc.Gender),
		Age:       age,
		Diagnosis: doc.Diagnosis,
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, doc.Timestamp); err == nil {
			r.Timestamp = ts
			break
		}
	}
	if doc.Operation != nil {
		r.OperationDescription = doc.Operation.Description
		r.OperationDate = doc.Operation.Date
	}
	if doc.Treatment != nil {
		r.TreatmentDetails = doc.Treatment.Details
		r.TreatmentStartDate = doc.Treatment.StartDate
	}
	return nil
}

func decodeAge(raw json.RawMessage) (*int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == `""` {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding age: %w", err)
		}
		n, err := ParseAge(s)
		if err != nil {
			return nil, fmt.Errorf("decoding age: %w", err)
		}
		return n, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding age: %w", err)
	}
	// Whole floats such as 45.0 are accepted; fractions and out-of-range
	// values are not.
	if f != math.Trunc(f) || f < MinAge || f > MaxAge {
		return nil, fmt.Errorf("decoding age: %w: %s", ErrInvalidAge, trimmed)
	}
	n := int(f)
	return &n, nil
}

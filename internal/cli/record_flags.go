package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/spf13/pflag"
)

// recordFlags binds the intake fields to a flag set. A saved record named by
// --record is loaded first and explicitly set flags override its fields.
type recordFlags struct {
	file                 string
	gender               string
	age                  string
	diagnosis            string
	operationDescription string
	operationDate        string
	treatmentDetails     string
	treatmentStartDate   string
}

func (f *recordFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.file, "record", "", "Saved record to start from")
	fs.StringVar(&f.gender, "gender", "", "Gender (Male, Female, Other, Prefer not to say)")
	fs.StringVar(&f.age, "age", "", "Age in years (0-150)")
	fs.StringVar(&f.diagnosis, "diagnosis", "", "Primary diagnosis")
	fs.StringVar(&f.operationDescription, "operation", "", "Operation description")
	fs.StringVar(&f.operationDate, "operation-date", "", "Operation date (YYYY-MM-DD)")
	fs.StringVar(&f.treatmentDetails, "treatment", "", "Treatment details")
	fs.StringVar(&f.treatmentStartDate, "treatment-start", "", "Treatment start date (YYYY-MM-DD)")
}

// build assembles the record. Gender and age are validated here; blank fields
// are left for the advice request to report.
func (f *recordFlags) build(ctx context.Context, app *App, fs *pflag.FlagSet) (*domain.PatientRecord, error) {
	rec := &domain.PatientRecord{}
	if f.file != "" {
		loaded, err := app.Records.Load(ctx, f.file)
		if err != nil {
			return nil, err
		}
		rec = loaded
	}

	if fs.Changed("gender") {
		g, err := domain.ParseGender(strings.TrimSpace(f.gender))
		if err != nil {
			return nil, err
		}
		rec.Gender = g
	}
	if fs.Changed("age") {
		age, err := domain.ParseAge(f.age)
		if err != nil {
			return nil, fmt.Errorf("--age: %w", err)
		}
		rec.Age = age
	}

	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = strings.TrimSpace(v)
		}
	}
	set("diagnosis", &rec.Diagnosis, f.diagnosis)
	set("operation", &rec.OperationDescription, f.operationDescription)
	set("operation-date", &rec.OperationDate, f.operationDate)
	set("treatment", &rec.TreatmentDetails, f.treatmentDetails)
	set("treatment-start", &rec.TreatmentStartDate, f.treatmentStartDate)

	return rec, nil
}

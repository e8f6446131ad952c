package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// intakeFields holds form-bound values for the intake wizard.
type intakeFields struct {
	gender               string
	age                  string
	diagnosis            string
	operationDescription string
	operationDate        string
	treatmentDetails     string
	treatmentStartDate   string
}

// intakeFieldsFrom pre-populates the form from rec. Blank dates default to
// today.
func intakeFieldsFrom(rec *domain.PatientRecord, today string) *intakeFields {
	f := &intakeFields{
		operationDate:      today,
		treatmentStartDate: today,
	}
	if rec == nil {
		return f
	}
	f.gender = string(rec.Gender)
	f.age = rec.AgeString()
	f.diagnosis = rec.Diagnosis
	f.operationDescription = rec.OperationDescription
	f.treatmentDetails = rec.TreatmentDetails
	if rec.OperationDate != "" {
		f.operationDate = rec.OperationDate
	}
	if rec.TreatmentStartDate != "" {
		f.treatmentStartDate = rec.TreatmentStartDate
	}
	return f
}

// record converts the form values. The form validators have already checked
// gender and age.
func (f *intakeFields) record() (*domain.PatientRecord, error) {
	rec := &domain.PatientRecord{
		Diagnosis:            strings.TrimSpace(f.diagnosis),
		OperationDescription: strings.TrimSpace(f.operationDescription),
		OperationDate:        strings.TrimSpace(f.operationDate),
		TreatmentDetails:     strings.TrimSpace(f.treatmentDetails),
		TreatmentStartDate:   strings.TrimSpace(f.treatmentStartDate),
	}
	if f.gender != "" {
		g, err := domain.ParseGender(f.gender)
		if err != nil {
			return nil, err
		}
		rec.Gender = g
	}
	age, err := domain.ParseAge(f.age)
	if err != nil {
		return nil, err
	}
	rec.Age = age
	return rec, nil
}

// applyIntake stores the edited record in the shared state.
func applyIntake(state *SharedState, f *intakeFields) tea.Msg {
	rec, err := f.record()
	if err != nil {
		return formErrorOutput(err)
	}
	if state.Record != nil {
		rec.Timestamp = state.Record.Timestamp
	}
	state.Record = rec
	return refreshViewMsg{}
}

func newIntakeFormView(state *SharedState) View {
	f := intakeFieldsFrom(state.Record, state.App.now().Format(domain.DateLayout))

	genders := make([]huh.Option[string], 0, len(domain.ValidGenders))
	for _, g := range domain.ValidGenders {
		genders = append(genders, huh.NewOption(string(g), string(g)))
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Gender").
				Options(genders...).
				Value(&f.gender),
			huh.NewInput().
				Title("Age").
				Placeholder("0-150").
				Value(&f.age).
				Validate(validateOptionalAge),
			huh.NewInput().
				Title("Primary Diagnosis").
				Placeholder("e.g., Breast cancer, Colorectal cancer").
				Value(&f.diagnosis),
		).Title("Patient"),
		huh.NewGroup(
			huh.NewText().
				Title("Operation Description").
				Placeholder("Describe the surgical procedure performed").
				Lines(2).
				Value(&f.operationDescription),
			huh.NewInput().
				Title("Operation Date (YYYY-MM-DD)").
				Value(&f.operationDate).
				Validate(validateOptionalDate),
		).Title("Operation"),
		huh.NewGroup(
			huh.NewText().
				Title("Treatment Details").
				Placeholder("e.g., Chemotherapy, Radiotherapy, Immunotherapy").
				Lines(2).
				Value(&f.treatmentDetails),
			huh.NewInput().
				Title("Treatment Start Date (YYYY-MM-DD)").
				Value(&f.treatmentStartDate).
				Validate(validateOptionalDate),
		).Title("Treatment"),
	)

	return newWizardView(state, "Patient information", form, func() tea.Cmd {
		return func() tea.Msg { return applyIntake(state, f) }
	})
}

// applySave writes the current record and updates the status line.
func applySave(state *SharedState, name string) tea.Msg {
	filename, err := state.App.Records.Save(context.Background(), state.CurrentRecord(), name)
	state.Status = service.SaveStatus(filename, err)
	return refreshViewMsg{}
}

func newSaveFormView(state *SharedState) View {
	name := new(string)
	form := wizardInputText("Save as (filename without .json)", "patient_name", false, name)
	return newWizardView(state, "Save record", form, func() tea.Cmd {
		return func() tea.Msg { return applySave(state, *name) }
	})
}

// applyLoad replaces the intake record with a saved one. Picking the
// placeholder reports that no file was selected.
func applyLoad(state *SharedState, name string) tea.Msg {
	rec, err := state.App.Records.Load(context.Background(), name)
	state.Status = service.LoadStatus(name, err)
	if err == nil {
		state.Record = rec
	}
	return refreshViewMsg{}
}

func newLoadFormView(state *SharedState) View {
	choices, err := state.App.Records.Choices(context.Background())
	if err != nil {
		return wizardErrorView(state, "Load record", err)
	}
	name := new(string)
	return newWizardView(state, "Load record", wizardSelectFile(choices, name), func() tea.Cmd {
		return func() tea.Msg { return applyLoad(state, *name) }
	})
}

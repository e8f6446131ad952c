package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeFieldsFrom_DefaultsDatesToToday(t *testing.T) {
	f := intakeFieldsFrom(nil, "2025-06-15")
	assert.Equal(t, "2025-06-15", f.operationDate)
	assert.Equal(t, "2025-06-15", f.treatmentStartDate)
	assert.Empty(t, f.gender)

	f = intakeFieldsFrom(testutil.NewTestRecord(), "2025-06-15")
	assert.Equal(t, "2025-06-01", f.operationDate)
	assert.Equal(t, "68", f.age)
	assert.Equal(t, "Female", f.gender)
}

func TestApplyIntake_StoresRecord(t *testing.T) {
	app, _ := testApp(t)
	state := &SharedState{App: app}

	msg := applyIntake(state, &intakeFields{
		gender:             "Other",
		age:                " 45 ",
		diagnosis:          "  Bowel cancer ",
		operationDate:      "2025-06-01",
		treatmentStartDate: "2025-06-20",
	})

	_, ok := msg.(refreshViewMsg)
	require.True(t, ok, "expected refreshViewMsg, got %T", msg)
	require.NotNil(t, state.Record)
	assert.Equal(t, domain.GenderOther, state.Record.Gender)
	require.NotNil(t, state.Record.Age)
	assert.Equal(t, 45, *state.Record.Age)
	assert.Equal(t, "Bowel cancer", state.Record.Diagnosis)
}

func TestApplyIntake_BlankAgeIsUnknown(t *testing.T) {
	app, _ := testApp(t)
	state := &SharedState{App: app}

	applyIntake(state, &intakeFields{})
	require.NotNil(t, state.Record)
	assert.Nil(t, state.Record.Age)
}

func TestApplyIntake_ErrorReturnsOutputMessage(t *testing.T) {
	app, _ := testApp(t)
	state := &SharedState{App: app}

	msg := applyIntake(state, &intakeFields{age: "200"})
	out, ok := msg.(cmdOutputMsg)
	require.True(t, ok, "expected cmdOutputMsg, got %T", msg)
	assert.Contains(t, out.output, "Error:")
	assert.Nil(t, state.Record)
}

func TestApplySaveAndLoad(t *testing.T) {
	app, _ := testApp(t)
	state := &SharedState{App: app, Record: testutil.NewTestRecord()}

	applySave(state, "jane")
	assert.Equal(t, "✅ Patient data saved successfully to jane.json", state.Status)

	names, err := app.Records.Choices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"jane.json"}, names)

	state.Record = nil
	applyLoad(state, "jane.json")
	assert.Equal(t, "✅ Patient data loaded successfully from jane.json", state.Status)
	require.NotNil(t, state.Record)
	assert.Equal(t, "Breast cancer", state.Record.Diagnosis)
}

func TestApplySave_MissingName(t *testing.T) {
	app, _ := testApp(t)
	state := &SharedState{App: app}

	applySave(state, "  ")
	assert.Equal(t, "Please enter a filename to save the patient data.", state.Status)
}

func TestApplyLoad_PlaceholderAndMissing(t *testing.T) {
	app, _ := testApp(t)
	state := &SharedState{App: app}

	applyLoad(state, domain.NoSavedFilesPlaceholder)
	assert.Equal(t, "Please select a file to load.", state.Status)

	applyLoad(state, "ghost.json")
	assert.Equal(t, "❌ File ghost.json not found.", state.Status)
	assert.Nil(t, state.Record)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2025-02-28"))
	assert.Error(t, validateOptionalDate("28/02/2025"))

	assert.NoError(t, validateOptionalAge(""))
	assert.NoError(t, validateOptionalAge("150"))
	assert.Error(t, validateOptionalAge("-1"))
	assert.Error(t, validateOptionalAge("abc"))
}

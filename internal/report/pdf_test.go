package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(lines []Line, kind LineKind) []string {
	var out []string
	for _, l := range lines {
		if l.Kind == kind {
			out = append(out, l.Text)
		}
	}
	return out
}

func TestLines_AdviceEntry(t *testing.T) {
	e := testutil.NewTestAdviceEntry(testutil.WithResponse("1. **PATIENT STAGE ASSESSMENT**: Early.\n\n2. **CARER EXPECTATIONS**: Fatigue."))

	lines := Lines(e)

	require.NotEmpty(t, lines)
	assert.Equal(t, Line{LineTitle, "CareWise AI advice"}, lines[0])
	assert.Equal(t, []string{"Patient information", "Advice"}, texts(lines, LineHeading))

	body := texts(lines, LineBody)
	assert.Contains(t, body, "Age: 68")
	assert.Contains(t, body, "Operation date: 2025-06-01 (14 days ago)")
	assert.Contains(t, body, "Treatment start: 2025-06-15 - Treatment starts today")
	assert.Contains(t, body, "1. PATIENT STAGE ASSESSMENT: Early.")
	assert.Contains(t, body, "2. CARER EXPECTATIONS: Fatigue.")
	assert.Contains(t, body, "Model: gpt-4")
}

func TestLines_QuestionSection(t *testing.T) {
	e := testutil.NewTestAdviceEntry(
		testutil.WithRole(domain.RolePatientQuestion),
		testutil.WithQuestion("When can I swim?"),
	)

	lines := Lines(e)

	assert.Equal(t, "CareWise Patient answer", lines[0].Text)
	assert.Equal(t, []string{"Patient information", "Question", "Advice"}, texts(lines, LineHeading))
	assert.Contains(t, texts(lines, LineBody), "When can I swim?")
}

func TestLines_UnknownAge(t *testing.T) {
	e := testutil.NewTestAdviceEntry()
	e.Record.Age = nil

	assert.Contains(t, texts(Lines(e), LineBody), "Age: ")
}

func TestWritePDF_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, testutil.NewTestAdviceEntry(), filepath.Join(t.TempDir(), "nope.ttf"))

	assert.ErrorIs(t, err, ErrFontUnavailable)
	assert.Zero(t, buf.Len())
}

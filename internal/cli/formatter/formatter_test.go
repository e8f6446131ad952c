package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

var now = time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

func TestHumanTimestamp(t *testing.T) {
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanTimestamp(now.Add(-30*time.Hour), now))
	assert.Equal(t, "Jun 1, 2025", HumanTimestamp(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), now))
}

func TestDaysPhrase(t *testing.T) {
	assert.Equal(t, "today", DaysPhrase(0))
	assert.Equal(t, "1 day ago", DaysPhrase(1))
	assert.Equal(t, "12 days ago", DaysPhrase(12))
	assert.Equal(t, "in 1 day", DaysPhrase(-1))
	assert.Equal(t, "in 4 days", DaysPhrase(-4))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "0123abcd", stripANSI(TruncID("0123abcd-ffff-4444")))
	assert.Equal(t, "ab", stripANSI(TruncID("ab")))
}

func TestRenderTable_AlignsAndTruncates(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{"x", "a very long cell indeed"}, {"longer", "y"}},
		10,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "A       B"))
	assert.Contains(t, lines[2], "a very lo…")
	assert.NotContains(t, out, "indeed")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}, 0))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 8))
	assert.Nil(t, wrapText("   ", 10))
	assert.Equal(t, []string{"supercalifragilistic"}, wrapText("supercalifragilistic", 5))
}

func TestIndentWrapped_KeepsParagraphs(t *testing.T) {
	out := indentWrapped("alpha beta\n\ngamma", 20, "  ")
	assert.Equal(t, "  alpha beta\n\n  gamma", out)
}

func TestRenderAdviceText_StripsBoldMarkers(t *testing.T) {
	out := stripANSI(RenderAdviceText("1. **DIRECT ANSWER**: rest well", 80))
	assert.Equal(t, "1. DIRECT ANSWER: rest well", out)

	unmatched := stripANSI(RenderAdviceText("a ** b", 80))
	assert.Equal(t, "a ** b", unmatched)
}

func TestFormatTimeline(t *testing.T) {
	out := stripANSI(FormatTimeline(domain.Timeline{
		DaysSinceOperation: 10,
		Status:             domain.TreatmentStatus{Phase: domain.PhaseFuture, Days: 5},
	}))
	assert.Equal(t, "Operation 10 days ago · ○ UPCOMING (in 5 days)", out)

	today := stripANSI(FormatTimeline(domain.Timeline{Status: domain.TreatmentStatus{Phase: domain.PhaseStartsToday}}))
	assert.Equal(t, "Operation today · ◐ STARTS TODAY", today)
}

func TestFormatAdvice(t *testing.T) {
	out := stripANSI(FormatAdvice(AdviceView{
		Role:      domain.RoleCarerQuestion,
		Question:  "Can he shower?",
		Text:      "Keep the **wound** dry.",
		Model:     "gpt-4",
		LatencyMs: 900,
		Timeline:  domain.Timeline{DaysSinceOperation: 3, Status: domain.TreatmentStatus{Phase: domain.PhaseOngoing, Days: 1}},
	}, 80))

	assert.Contains(t, out, "CARER ANSWER")
	assert.Contains(t, out, "Q: Can he shower?")
	assert.Contains(t, out, "Keep the wound dry.")
	assert.Contains(t, out, "gpt-4 · 900ms")
	assert.Contains(t, out, "● ONGOING (1 day in)")
}

func TestFormatAdvice_HidesQuestionForAdviceRoles(t *testing.T) {
	out := stripANSI(FormatAdvice(AdviceView{Role: domain.RolePatientAdvice, Question: "ignored", Text: "x"}, 80))
	assert.NotContains(t, out, "Q:")
}

func TestFormatRecord(t *testing.T) {
	age := 68
	out := stripANSI(FormatRecord(&domain.PatientRecord{
		Gender:        domain.GenderFemale,
		Age:           &age,
		Diagnosis:     "Breast cancer",
		OperationDate: "2025-06-01",
		Timestamp:     now.Add(-2 * time.Hour),
	}, now))

	assert.Contains(t, out, "PATIENT")
	assert.Contains(t, out, "Female")
	assert.Contains(t, out, "68")
	assert.Contains(t, out, "2025-06-01 (14 days ago)")
	assert.Contains(t, out, "2h ago")
}

func TestFormatRecordList(t *testing.T) {
	assert.Contains(t, stripANSI(FormatRecordList(nil)), domain.NoSavedFilesPlaceholder)
	assert.Contains(t, stripANSI(FormatRecordList([]string{domain.NoSavedFilesPlaceholder})), domain.NoSavedFilesPlaceholder)

	out := stripANSI(FormatRecordList([]string{"a.json", "b.json"}))
	assert.Contains(t, out, "SAVED RECORDS")
	assert.Contains(t, out, "  a.json\n  b.json\n")
}

func TestFormatHistoryList(t *testing.T) {
	assert.Contains(t, stripANSI(FormatHistoryList(nil, now)), "No advice history yet.")

	out := stripANSI(FormatHistoryList([]*domain.AdviceEntry{{
		ID:        "abcdef0123456789",
		Role:      domain.RoleSpecificAdvice,
		Question:  "Diet after surgery?",
		CreatedAt: now.Add(-time.Minute * 3),
	}}, now))
	assert.Contains(t, out, "abcdef01")
	assert.Contains(t, out, "specific advice")
	assert.Contains(t, out, "Diet after surgery?")
	assert.Contains(t, out, "3m ago")
}

func TestFormatRoles(t *testing.T) {
	out := stripANSI(FormatRoles(func(r domain.Role) int {
		if r.IsQuestion() {
			return 1200
		}
		return 0
	}))
	for _, r := range domain.AllRoles {
		assert.Contains(t, out, string(r))
	}
	assert.Contains(t, out, "MAX TOKENS")
	assert.Contains(t, out, "1200")
}

func TestSpinnerFrame(t *testing.T) {
	assert.Equal(t, SpinnerFrame(0), SpinnerFrame(len(spinnerFrames)))
}

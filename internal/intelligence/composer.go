package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
)

// ComposePrompt renders the user prompt for role. The question is embedded,
// quoted verbatim, only for question roles.
func ComposePrompt(role domain.Role, rec *domain.PatientRecord, tl domain.Timeline, question string) (string, error) {
	tmpl, ok := promptTemplates[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(tmpl.intro)
	b.WriteString("\n\n")
	writePatientBlock(&b, rec, tl)

	if tmpl.questionLabel != "" {
		fmt.Fprintf(&b, "\n%s:\n\"%s\"\n", tmpl.questionLabel, question)
	}

	b.WriteString("\n")
	b.WriteString(tmpl.lead)
	b.WriteString("\n")
	if !tmpl.compact {
		b.WriteString("\n")
	}
	for i, s := range tmpl.sections {
		if i > 0 && !tmpl.compact {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, s.title, s.body)
	}

	b.WriteString("\n")
	b.WriteString(tmpl.tailoring)
	b.WriteString("\n")
	if tmpl.closing != "" {
		b.WriteString("\n")
		b.WriteString(tmpl.closing)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// SystemPrompt returns the persona paired with role.
func SystemPrompt(role domain.Role) (string, error) {
	p, ok := systemPrompts[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	return p, nil
}

func writePatientBlock(b *strings.Builder, rec *domain.PatientRecord, tl domain.Timeline) {
	b.WriteString("PATIENT INFORMATION:\n")
	fmt.Fprintf(b, "- Gender: %s\n", rec.Gender)
	fmt.Fprintf(b, "- Age: %s years\n", rec.AgeString())
	fmt.Fprintf(b, "- Primary Diagnosis: %s\n", rec.Diagnosis)
	fmt.Fprintf(b, "- Operation: %s\n", rec.OperationDescription)
	fmt.Fprintf(b, "- Operation Date: %s (%d days ago)\n", rec.OperationDate, tl.DaysSinceOperation)
	fmt.Fprintf(b, "- Treatment Details: %s\n", rec.TreatmentDetails)
	fmt.Fprintf(b, "- Treatment Start Date: %s - %s\n", rec.TreatmentStartDate, tl.Status)
}

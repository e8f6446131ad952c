package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
)

// AdviceView carries what a rendered advice result needs.
type AdviceView struct {
	Role      domain.Role
	Question  string
	Text      string
	Model     string
	LatencyMs int64
	Timeline  domain.Timeline
}

// FormatAdvice renders an advice result for the terminal: a heading, the
// timeline line, the question for question roles, and the wrapped advice.
func FormatAdvice(v AdviceView, width int) string {
	var b strings.Builder

	b.WriteString(Header(v.Role.Label()))
	b.WriteString("\n")
	b.WriteString(FormatTimeline(v.Timeline))
	b.WriteString("\n\n")

	if v.Role.IsQuestion() && v.Question != "" {
		fmt.Fprintf(&b, "%s %s\n\n", StyleYellow.Render("Q:"), v.Question)
	}

	b.WriteString(RenderAdviceText(v.Text, width))
	b.WriteString("\n")

	if v.Model != "" {
		b.WriteString("\n")
		b.WriteString(Dim(fmt.Sprintf("%s · %dms", v.Model, v.LatencyMs)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTimeline renders "Operation 10 days ago · ○ UPCOMING (in 5 days)".
func FormatTimeline(tl domain.Timeline) string {
	op := "Operation " + DaysPhrase(tl.DaysSinceOperation)
	var phase string
	switch tl.Status.Phase {
	case domain.PhaseFuture:
		phase = fmt.Sprintf("%s %s", PhaseIndicator(tl.Status.Phase), Dim("(in "+pluralDays(tl.Status.Days)+")"))
	case domain.PhaseOngoing:
		phase = fmt.Sprintf("%s %s", PhaseIndicator(tl.Status.Phase), Dim("("+pluralDays(tl.Status.Days)+" in)"))
	default:
		phase = PhaseIndicator(tl.Status.Phase)
	}
	return Dim(op+" · ") + phase
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatAdviceError renders a failed advice request.
func FormatAdviceError(msg string) string {
	return StyleRed.Render(msg)
}

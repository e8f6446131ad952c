package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
)

const headingWidth = 48

// FormatHistoryList renders advice history entries as a table.
func FormatHistoryList(entries []*domain.AdviceEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No advice history yet.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			RoleBadge(e.Role),
			e.Heading(),
			HumanTimestamp(e.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "ROLE", "SUBJECT", "WHEN"}, rows, headingWidth)
}

// FormatHistoryEntry renders one stored exchange in full.
func FormatHistoryEntry(e *domain.AdviceEntry, now time.Time, width int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n\n", Bold(e.ID), RoleBadge(e.Role), Dim(HumanTimestamp(e.CreatedAt, now)))
	b.WriteString(FormatAdvice(AdviceView{
		Role:      e.Role,
		Question:  e.Question,
		Text:      e.Response,
		Model:     e.Model,
		LatencyMs: e.LatencyMs,
		Timeline:  e.Timeline,
	}, width))
	return b.String()
}

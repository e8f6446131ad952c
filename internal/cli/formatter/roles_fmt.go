package formatter

import (
	"strconv"

	"github.com/alexanderramin/carewise/internal/domain"
)

// FormatRoles lists every advice role with its label, whether it takes a
// question, and the completion token cap reported by maxTokens.
func FormatRoles(maxTokens func(domain.Role) int) string {
	rows := make([][]string, 0, len(domain.AllRoles))
	for _, r := range domain.AllRoles {
		q := Dim("no")
		if r.IsQuestion() {
			q = StyleYellow.Render("yes")
		}
		limit := Dim("-")
		if n := maxTokens(r); n > 0 {
			limit = strconv.Itoa(n)
		}
		rows = append(rows, []string{string(r), RoleBadge(r), q, limit})
	}
	return RenderTable([]string{"ROLE", "LABEL", "QUESTION", "MAX TOKENS"}, rows, 0)
}

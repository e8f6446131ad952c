package intelligence

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/carewise/internal/domain"
)

// Display strings shown in place of advice when a request cannot complete.
const (
	MsgIncompleteInput = "Please fill in all fields before submitting."
	MsgMissingQuestion = "Please enter a question."
)

// UserMessage converts an advice error into the text shown in the advice pane.
// Provider errors are reported with their raw text.
func UserMessage(role domain.Role, err error) string {
	var dateErr *domain.InvalidDateError
	var unavailable *domain.AdviceUnavailableError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMissingQuestion):
		return MsgMissingQuestion
	case errors.Is(err, domain.ErrIncompleteInput):
		return MsgIncompleteInput
	case errors.As(err, &dateErr):
		return fmt.Sprintf("❌ Invalid %s %q: %v\n\nPlease use the YYYY-MM-DD format.", dateErr.Field, dateErr.Value, dateErr.Err)
	case errors.As(err, &unavailable):
		return fmt.Sprintf("❌ Error getting %s: %s\n\nPlease check your API key and internet connection.", role.Label(), unavailable.Raw())
	default:
		return fmt.Sprintf("❌ Error getting %s: %v", role.Label(), err)
	}
}

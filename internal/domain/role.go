package domain

import "fmt"

// Role selects the audience and purpose of an advice request.
type Role string

const (
	RoleGeneralAdvice   Role = "general_advice"
	RolePatientAdvice   Role = "patient_advice"
	RoleCarerAdvice     Role = "carer_advice"
	RolePatientQuestion Role = "patient_question"
	RoleCarerQuestion   Role = "carer_question"
	RoleSpecificAdvice  Role = "specific_advice"
)

// AllRoles lists the roles in display order.
var AllRoles = []Role{
	RoleGeneralAdvice,
	RolePatientAdvice,
	RoleCarerAdvice,
	RolePatientQuestion,
	RoleCarerQuestion,
	RoleSpecificAdvice,
}

// IsValid reports whether r is one of the six supported roles.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsQuestion reports whether the role carries a free-text question.
func (r Role) IsQuestion() bool {
	switch r {
	case RolePatientQuestion, RoleCarerQuestion, RoleSpecificAdvice:
		return true
	}
	return false
}

// Label is the short human name used in headings and error messages.
func (r Role) Label() string {
	switch r {
	case RoleGeneralAdvice:
		return "AI advice"
	case RolePatientAdvice:
		return "patient advice"
	case RoleCarerAdvice:
		return "carer advice"
	case RolePatientQuestion:
		return "patient answer"
	case RoleCarerQuestion:
		return "carer answer"
	case RoleSpecificAdvice:
		return "specific advice"
	default:
		return string(r)
	}
}

// ParseRole maps a role name to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

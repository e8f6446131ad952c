package domain

import "time"

// AdviceEntry is one successful advice exchange kept in the history log.
type AdviceEntry struct {
	ID        string
	Role      Role
	Question  string
	Record    PatientRecord
	Timeline  Timeline
	Prompt    string
	Response  string
	Model     string
	LatencyMs int64
	CreatedAt time.Time
}

// Heading returns a one-line description for listings.
func (e *AdviceEntry) Heading() string {
	if e.Question != "" {
		return e.Question
	}
	if e.Record.Diagnosis != "" {
		return e.Record.Diagnosis
	}
	return e.Role.Label()
}

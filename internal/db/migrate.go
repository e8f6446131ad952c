package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS advice_history (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL CHECK(role IN ('general_advice','patient_advice','carer_advice','patient_question','carer_question','specific_advice')),
		question TEXT NOT NULL DEFAULT '',
		record_json TEXT NOT NULL,
		prompt TEXT NOT NULL,
		response TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		days_since_operation INTEGER NOT NULL DEFAULT 0,
		treatment_phase TEXT NOT NULL DEFAULT '',
		treatment_days INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_advice_history_created ON advice_history(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_advice_history_role ON advice_history(role)`,
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/carewise/internal/db"
	"github.com/alexanderramin/carewise/internal/domain"
)

// SQLiteAdviceRepo implements AdviceRepo using a SQLite database.
type SQLiteAdviceRepo struct {
	db db.DBTX
}

// NewSQLiteAdviceRepo creates a new SQLiteAdviceRepo.
func NewSQLiteAdviceRepo(db db.DBTX) *SQLiteAdviceRepo {
	return &SQLiteAdviceRepo{db: db}
}

const adviceColumns = `id, role, question, record_json, prompt, response, model,
	days_since_operation, treatment_phase, treatment_days, latency_ms, created_at`

func (r *SQLiteAdviceRepo) Create(ctx context.Context, e *domain.AdviceEntry) error {
	recordJSON, err := json.Marshal(e.Record)
	if err != nil {
		return fmt.Errorf("encoding advice record: %w", err)
	}

	query := `INSERT INTO advice_history (` + adviceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		string(e.Role),
		e.Question,
		string(recordJSON),
		e.Prompt,
		e.Response,
		e.Model,
		e.Timeline.DaysSinceOperation,
		string(e.Timeline.Status.Phase),
		e.Timeline.Status.Days,
		e.LatencyMs,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting advice entry: %w", err)
	}
	return nil
}

func (r *SQLiteAdviceRepo) GetByID(ctx context.Context, id string) (*domain.AdviceEntry, error) {
	query := `SELECT ` + adviceColumns + ` FROM advice_history WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

func (r *SQLiteAdviceRepo) ListRecent(ctx context.Context, limit int) ([]*domain.AdviceEntry, error) {
	query := `SELECT ` + adviceColumns + ` FROM advice_history
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing recent advice: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteAdviceRepo) ListByRole(ctx context.Context, role domain.Role, limit int) ([]*domain.AdviceEntry, error) {
	query := `SELECT ` + adviceColumns + ` FROM advice_history
		WHERE role = ?
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, string(role), normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing advice by role: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteAdviceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM advice_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting advice entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting advice entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("advice entry %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry scans a single entry from a *sql.Row.
func (r *SQLiteAdviceRepo) scanEntry(row *sql.Row) (*domain.AdviceEntry, error) {
	e, err := r.populateEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("advice entry: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// scanEntries scans multiple entries from *sql.Rows.
func (r *SQLiteAdviceRepo) scanEntries(rows *sql.Rows) ([]*domain.AdviceEntry, error) {
	entries := []*domain.AdviceEntry{}
	for rows.Next() {
		e, err := r.populateEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating advice entries: %w", err)
	}
	return entries, nil
}

// populateEntry scans one row and decodes its stored record and timestamps.
func (r *SQLiteAdviceRepo) populateEntry(s rowScanner) (*domain.AdviceEntry, error) {
	var (
		e                   domain.AdviceEntry
		role, phase         string
		recordJSON, created string
	)
	err := s.Scan(
		&e.ID, &role, &e.Question, &recordJSON, &e.Prompt, &e.Response, &e.Model,
		&e.Timeline.DaysSinceOperation, &phase, &e.Timeline.Status.Days, &e.LatencyMs, &created,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning advice entry: %w", err)
	}

	e.Role = domain.Role(role)
	e.Timeline.Status.Phase = domain.TreatmentPhase(phase)
	if err := json.Unmarshal([]byte(recordJSON), &e.Record); err != nil {
		return nil, fmt.Errorf("decoding advice record: %w", err)
	}
	e.CreatedAt, err = parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}

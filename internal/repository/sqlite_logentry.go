package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/google/uuid"
)

const logEntryColumns = `id, date, weight, calories, created_at, updated_at`

// SQLiteLogEntryRepo implements LogEntryRepo using a SQLite database.
type SQLiteLogEntryRepo struct {
	db db.DBTX
}

// NewSQLiteLogEntryRepo creates a new SQLiteLogEntryRepo.
func NewSQLiteLogEntryRepo(conn db.DBTX) *SQLiteLogEntryRepo {
	return &SQLiteLogEntryRepo{db: conn}
}

func (r *SQLiteLogEntryRepo) Upsert(ctx context.Context, e *domain.LogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := nowUTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	query := `INSERT INTO log_entries (` + logEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			weight = excluded.weight,
			calories = excluded.calories,
			updated_at = excluded.updated_at
		RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query,
		e.ID,
		e.DateKey(),
		nullableFloat(e.Weight),
		nullableFloat(e.Calories),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)

	var createdAt string
	if err := row.Scan(&e.ID, &createdAt); err != nil {
		return fmt.Errorf("upserting log entry %s: %w", e.DateKey(), err)
	}
	parsed, err := parseTimestamp(createdAt)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	e.CreatedAt = parsed
	return nil
}

func (r *SQLiteLogEntryRepo) GetByDate(ctx context.Context, date time.Time) (*domain.LogEntry, error) {
	key := date.Format(domain.DateLayout)
	query := `SELECT ` + logEntryColumns + ` FROM log_entries WHERE date = ?`
	e, err := scanLogEntry(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("log entry %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning log entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteLogEntryRepo) List(ctx context.Context) ([]domain.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries ORDER BY date`
	return r.query(ctx, "listing log entries", query)
}

func (r *SQLiteLogEntryRepo) ListRecent(ctx context.Context, n int) ([]domain.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries ORDER BY date DESC LIMIT ?`
	return r.query(ctx, "listing recent log entries", query, n)
}

func (r *SQLiteLogEntryRepo) ListRange(ctx context.Context, from, to time.Time) ([]domain.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries
		WHERE date >= ? AND date <= ?
		ORDER BY date`
	return r.query(ctx, "listing log entries by range", query,
		from.Format(domain.DateLayout), to.Format(domain.DateLayout))
}

func (r *SQLiteLogEntryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM log_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting log entries: %w", err)
	}
	return n, nil
}

func (r *SQLiteLogEntryRepo) Delete(ctx context.Context, date time.Time) error {
	key := date.Format(domain.DateLayout)
	res, err := r.db.ExecContext(ctx, `DELETE FROM log_entries WHERE date = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting log entry %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("log entry %s: %w", key, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLogEntryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM log_entries`); err != nil {
		return fmt.Errorf("deleting all log entries: %w", err)
	}
	return nil
}

func (r *SQLiteLogEntryRepo) query(ctx context.Context, op, query string, args ...any) ([]domain.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning log entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log entries: %w", err)
	}
	return entries, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLogEntry(row rowScanner) (*domain.LogEntry, error) {
	var e domain.LogEntry
	var dateStr, createdAt, updatedAt string
	var weight, calories sql.NullFloat64

	if err := row.Scan(&e.ID, &dateStr, &weight, &calories, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if e.Date, err = time.Parse(domain.DateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", dateStr, err)
	}
	if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	e.Weight = floatPtr(weight)
	e.Calories = floatPtr(calories)
	return &e, nil
}

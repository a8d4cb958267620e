package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT id, start_weight, goal_weight, height_cm, weekly_rate, calculated_tdee, updated_at
		FROM user_profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, domain.DefaultProfileID)

	var p domain.UserProfile
	var start, goal, height sql.NullFloat64
	var tdee sql.NullInt64
	var updatedAt string
	err := row.Scan(&p.ID, &start, &goal, &height, &p.WeeklyRate, &tdee, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	p.StartWeight = floatPtr(start)
	p.GoalWeight = floatPtr(goal)
	p.HeightCm = floatPtr(height)
	p.CalculatedTDEE = intPtr(tdee)
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if p.ID == "" {
		p.ID = domain.DefaultProfileID
	}
	p.UpdatedAt = nowUTC()

	query := `INSERT OR REPLACE INTO user_profile
		(id, start_weight, goal_weight, height_cm, weekly_rate, calculated_tdee, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		nullableFloat(p.StartWeight),
		nullableFloat(p.GoalWeight),
		nullableFloat(p.HeightCm),
		p.WeeklyRate,
		nullableInt(p.CalculatedTDEE),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/studybuddy/studybuddy/internal/model"
)

var (
	ErrActivityNotFound = errors.New("daily activity not found")
)

type ActivityRepository interface {
	MarkStudied(ctx context.Context, userID, day string) (*model.DailyActivity, error)
	Range(ctx context.Context, userID, from, to string) ([]*model.DailyActivity, error)
	ByDay(ctx context.Context, userID, day string) (*model.DailyActivity, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// upsertStudied inserts or flips the (user, day) ledger row to studied.
// The conflict target makes concurrent callers converge on one row; studied is only
// ever written as true.
func upsertStudied(ctx context.Context, exec sqlx.ExecerContext, userID, day string, now time.Time) error {
	query := `INSERT INTO daily_activities (id, user_id, day, studied, created_at, updated_at)
	          VALUES ($1, $2, $3, TRUE, $4, $5)
	          ON CONFLICT (user_id, day) DO UPDATE SET studied = TRUE, updated_at = excluded.updated_at`

	_, err := exec.ExecContext(ctx, query, uuid.New().String(), userID, day, now, now)
	return err
}

func activityByDay(ctx context.Context, q sqlx.QueryerContext, userID, day string) (*model.DailyActivity, error) {
	activity := &model.DailyActivity{}
	query := `SELECT id, user_id, day, studied, created_at, updated_at
	          FROM daily_activities WHERE user_id = $1 AND day = $2`

	err := sqlx.GetContext(ctx, q, activity, query, userID, day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}

	return activity, nil
}

func (r *activityRepository) MarkStudied(ctx context.Context, userID, day string) (*model.DailyActivity, error) {
	err := upsertStudied(ctx, r.db, userID, day, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return activityByDay(ctx, r.db, userID, day)
}

func (r *activityRepository) ByDay(ctx context.Context, userID, day string) (*model.DailyActivity, error) {
	return activityByDay(ctx, r.db, userID, day)
}

// Range returns the rows with from <= day <= to. Days are ISO strings, so lexical
// comparison is chronological.
func (r *activityRepository) Range(ctx context.Context, userID, from, to string) ([]*model.DailyActivity, error) {
	var activities []*model.DailyActivity
	query := `SELECT id, user_id, day, studied, created_at, updated_at
	          FROM daily_activities
	          WHERE user_id = $1 AND day >= $2 AND day <= $3`

	err := r.db.SelectContext(ctx, &activities, query, userID, from, to)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

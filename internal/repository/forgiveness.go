package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/studybuddy/studybuddy/internal/model"
)

var (
	ErrForgivenessNotFound = errors.New("weekly forgiveness not found")
	ErrForgivenessUsed     = errors.New("forgiveness already used this week")
)

type ForgivenessRepository interface {
	ByWeek(ctx context.Context, userID, weekStart string) (*model.WeeklyForgiveness, error)
	// Forgive consumes the token for weekStart and marks day studied in one transaction.
	Forgive(ctx context.Context, userID, weekStart, day string) error
}

type forgivenessRepository struct {
	db *sqlx.DB
}

func NewForgivenessRepository(db *sqlx.DB) ForgivenessRepository {
	return &forgivenessRepository{db: db}
}

func (r *forgivenessRepository) ByWeek(ctx context.Context, userID, weekStart string) (*model.WeeklyForgiveness, error) {
	forgiveness := &model.WeeklyForgiveness{}
	query := `SELECT id, user_id, week_start, used, forgiven_day, created_at, updated_at
	          FROM weekly_forgiveness WHERE user_id = $1 AND week_start = $2`

	err := r.db.GetContext(ctx, forgiveness, query, userID, weekStart)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrForgivenessNotFound
	}
	if err != nil {
		return nil, err
	}

	return forgiveness, nil
}

func (r *forgivenessRepository) Forgive(ctx context.Context, userID, weekStart, day string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	// The WHERE on the conflict branch turns "already used" into zero affected rows,
	// so the check and the write are a single statement.
	query := `INSERT INTO weekly_forgiveness (id, user_id, week_start, used, forgiven_day, created_at, updated_at)
	          VALUES ($1, $2, $3, TRUE, $4, $5, $6)
	          ON CONFLICT (user_id, week_start) DO UPDATE
	          SET used = TRUE, forgiven_day = excluded.forgiven_day, updated_at = excluded.updated_at
	          WHERE weekly_forgiveness.used = FALSE`

	result, err := tx.ExecContext(ctx, query, uuid.New().String(), userID, weekStart, day, now, now)
	if err != nil {
		return fmt.Errorf("failed to consume forgiveness: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrForgivenessUsed
	}

	err = upsertStudied(ctx, tx, userID, day, now)
	if err != nil {
		return fmt.Errorf("failed to mark forgiven day: %w", err)
	}

	return tx.Commit()
}

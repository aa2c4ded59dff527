package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/studybuddy/studybuddy/internal/model"
)

var (
	ErrFocusSessionNotFound = errors.New("focus session not found")
	ErrFocusSessionOpen     = errors.New("focus session already open")
	ErrFocusSessionClosed   = errors.New("focus session already finished")
)

const focusSessionColumns = `id, user_id, kind, planned_minutes, started_at, ended_at, ended_day, completed, interrupted`

type FocusSessionRepository interface {
	Create(ctx context.Context, session *model.FocusSession) error
	ByID(ctx context.Context, userID, sessionID string) (*model.FocusSession, error)
	Finish(ctx context.Context, session *model.FocusSession) error
	Recent(ctx context.Context, userID string, limit int) ([]*model.FocusSession, error)
	CompletedWork(ctx context.Context, userID, day string) ([]*model.FocusSession, error)
}

type focusSessionRepository struct {
	db *sqlx.DB
}

func NewFocusSessionRepository(db *sqlx.DB) FocusSessionRepository {
	return &focusSessionRepository{db: db}
}

func (r *focusSessionRepository) Create(ctx context.Context, session *model.FocusSession) error {
	query := `INSERT INTO focus_sessions (id, user_id, kind, planned_minutes, started_at, completed, interrupted)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Kind,
		session.PlannedMinutes,
		session.StartedAt,
		session.Completed,
		session.Interrupted,
	)
	if err != nil {
		// Partial unique index on open sessions (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrFocusSessionOpen
		}
		return err
	}

	return nil
}

func (r *focusSessionRepository) ByID(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	session := &model.FocusSession{}
	query := `SELECT ` + focusSessionColumns + ` FROM focus_sessions WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, session, query, sessionID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFocusSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Finish closes an open session. Only the first caller wins; later callers get
// ErrFocusSessionClosed. A completed work session also marks its end day studied in
// the same transaction.
func (r *focusSessionRepository) Finish(ctx context.Context, session *model.FocusSession) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE focus_sessions
	          SET ended_at = $1, ended_day = $2, completed = $3, interrupted = $4
	          WHERE id = $5 AND user_id = $6 AND ended_at IS NULL`

	result, err := tx.ExecContext(ctx, query,
		session.EndedAt,
		session.EndedDay,
		session.Completed,
		session.Interrupted,
		session.ID,
		session.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFocusSessionClosed
	}

	if session.Completed && session.IsWork() && session.EndedDay != nil && session.EndedAt != nil {
		err = upsertStudied(ctx, tx, session.UserID, *session.EndedDay, session.EndedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to mark session day: %w", err)
		}
	}

	return tx.Commit()
}

func (r *focusSessionRepository) Recent(ctx context.Context, userID string, limit int) ([]*model.FocusSession, error) {
	var sessions []*model.FocusSession
	query := `SELECT ` + focusSessionColumns + ` FROM focus_sessions
	          WHERE user_id = $1 ORDER BY started_at DESC LIMIT $2`

	err := r.db.SelectContext(ctx, &sessions, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *focusSessionRepository) CompletedWork(ctx context.Context, userID, day string) ([]*model.FocusSession, error) {
	var sessions []*model.FocusSession
	query := `SELECT ` + focusSessionColumns + ` FROM focus_sessions
	          WHERE user_id = $1 AND ended_day = $2 AND kind = $3 AND completed = TRUE`

	err := r.db.SelectContext(ctx, &sessions, query, userID, day, model.FocusKindWork)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

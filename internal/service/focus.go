package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studybuddy/studybuddy/internal/calendar"
	"github.com/studybuddy/studybuddy/internal/model"
	"github.com/studybuddy/studybuddy/internal/repository"
	"github.com/studybuddy/studybuddy/internal/validation"
)

const (
	MaxSessionMinutes   = 180
	DefaultSessionLimit = 20
	MaxSessionLimit     = 100
)

type FocusService struct {
	repo     repository.FocusSessionRepository
	location *time.Location
	now      func() time.Time
}

func NewFocusService(repo repository.FocusSessionRepository, location *time.Location) *FocusService {
	if location == nil {
		location = time.UTC
	}
	return &FocusService{
		repo:     repo,
		location: location,
		now:      time.Now,
	}
}

func (s *FocusService) Start(ctx context.Context, userID, kind string, minutes int) (*model.FocusSession, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	if !model.IsFocusKind(kind) {
		return nil, ErrInvalidSessionKind
	}

	if minutes < 1 || minutes > MaxSessionMinutes {
		return nil, ErrInvalidDuration
	}

	session := &model.FocusSession{
		ID:             uuid.New().String(),
		UserID:         userID,
		Kind:           kind,
		PlannedMinutes: minutes,
		StartedAt:      s.now().UTC(),
	}

	err = s.repo.Create(ctx, session)
	if errors.Is(err, repository.ErrFocusSessionOpen) {
		return nil, ErrSessionActive
	}
	if err != nil {
		return nil, storageError("start focus session", err)
	}

	return session, nil
}

// Finish closes the user's open session. A work session that was not interrupted
// counts as studying on the day it ended.
func (s *FocusService) Finish(ctx context.Context, userID, sessionID string, interrupted bool) (*model.FocusSession, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	// Verify ownership
	session, err := s.repo.ByID(ctx, userID, sessionID)
	if errors.Is(err, repository.ErrFocusSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, storageError("load focus session", err)
	}

	if !session.IsOpen() {
		return nil, ErrSessionFinished
	}

	now := s.now().UTC()
	endedDay := calendar.Format(calendar.Day(now, s.location))
	session.EndedAt = &now
	session.EndedDay = &endedDay
	session.Completed = !interrupted
	session.Interrupted = interrupted

	err = s.repo.Finish(ctx, session)
	if errors.Is(err, repository.ErrFocusSessionClosed) {
		return nil, ErrSessionFinished
	}
	if err != nil {
		return nil, storageError("finish focus session", err)
	}

	return session, nil
}

// Sessions lists the user's sessions newest first. limit 0 means the default.
func (s *FocusService) Sessions(ctx context.Context, userID string, limit int) ([]*model.FocusSession, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	if limit < 0 || limit > MaxSessionLimit {
		return nil, validation.NewError("limit", "must be between 1 and 100")
	}
	if limit == 0 {
		limit = DefaultSessionLimit
	}

	sessions, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return nil, storageError("list focus sessions", err)
	}

	if sessions == nil {
		sessions = []*model.FocusSession{}
	}
	return sessions, nil
}

// Stats sums the completed work sessions that ended on date (empty means today).
func (s *FocusService) Stats(ctx context.Context, userID, date string) (*model.FocusStats, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	day := calendar.Day(s.now(), s.location)
	if date != "" {
		day, err = calendar.Parse(date, s.location)
		if err != nil {
			return nil, dateError("date", err)
		}
	}

	key := calendar.Format(day)
	sessions, err := s.repo.CompletedWork(ctx, userID, key)
	if err != nil {
		return nil, storageError("load focus stats", err)
	}

	stats := &model.FocusStats{Date: key}
	for _, session := range sessions {
		stats.CompletedSessions++
		stats.FocusMinutes += session.PlannedMinutes
	}

	return stats, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/studybuddy/studybuddy/internal/calendar"
	"github.com/studybuddy/studybuddy/internal/model"
	"github.com/studybuddy/studybuddy/internal/repository"
	"github.com/studybuddy/studybuddy/internal/validation"
)

// StreakLookbackDays bounds how far back the streak scan reads. Longer streaks are
// reported as exactly this many days.
const StreakLookbackDays = 365

type StreakService struct {
	activities  repository.ActivityRepository
	forgiveness repository.ForgivenessRepository
	location    *time.Location
	now         func() time.Time
}

// NewStreakService builds the ledger, forgiveness and streak operations.
// location decides which calendar day an instant falls on; nil means UTC.
func NewStreakService(
	activities repository.ActivityRepository,
	forgiveness repository.ForgivenessRepository,
	location *time.Location,
) *StreakService {
	if location == nil {
		location = time.UTC
	}
	return &StreakService{
		activities:  activities,
		forgiveness: forgiveness,
		location:    location,
		now:         time.Now,
	}
}

// Today returns the current calendar day in the configured timezone.
func (s *StreakService) Today() time.Time {
	return calendar.Day(s.now(), s.location)
}

// day parses a caller-supplied date; an empty value means today when allowEmpty is set.
func (s *StreakService) day(field, value string, allowEmpty bool) (time.Time, error) {
	if value == "" && allowEmpty {
		return s.Today(), nil
	}
	d, err := calendar.Parse(value, s.location)
	if err != nil {
		return time.Time{}, dateError(field, err)
	}
	return d, nil
}

// MarkStudied records that userID studied on date. Repeating the call is a no-op success.
func (s *StreakService) MarkStudied(ctx context.Context, userID, date string) (*model.DailyActivity, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	day, err := s.day("date", date, false)
	if err != nil {
		return nil, err
	}

	return s.markDay(ctx, userID, day)
}

func (s *StreakService) markDay(ctx context.Context, userID string, day time.Time) (*model.DailyActivity, error) {
	activity, err := s.activities.MarkStudied(ctx, userID, calendar.Format(day))
	if err != nil {
		return nil, storageError("mark day studied", err)
	}
	return activity, nil
}

// ForgiveMissed spends the user's token for the ISO week containing date and marks date
// studied. Both writes happen together or not at all.
func (s *StreakService) ForgiveMissed(ctx context.Context, userID, date string) error {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return err
	}

	day, err := s.day("date", date, false)
	if err != nil {
		return err
	}

	weekStart := calendar.Format(calendar.WeekStartMonday(day))

	err = s.forgiveness.Forgive(ctx, userID, weekStart, calendar.Format(day))
	if errors.Is(err, repository.ErrForgivenessUsed) {
		return ErrForgivenessUsed
	}
	if err != nil {
		return storageError("forgive missed day", err)
	}

	slog.Info("forgiveness used", "user_id", userID, "week_start", weekStart, "day", calendar.Format(day))
	return nil
}

// WeekView returns the Sunday..Saturday week containing ref, plus whether the
// forgiveness token of the Monday-start week containing ref is spent. The two week
// conventions differ on Sundays: a Sunday starts the display week but closes the
// forgiveness week.
func (s *StreakService) WeekView(ctx context.Context, userID, ref string) (*model.WeekView, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	refDay, err := s.day("date", ref, true)
	if err != nil {
		return nil, err
	}

	days := calendar.Week(calendar.WeekStartSunday(refDay))

	rows, err := s.activities.Range(ctx, userID, calendar.Format(days[0]), calendar.Format(days[6]))
	if err != nil {
		return nil, storageError("load week activity", err)
	}

	studied := make(map[string]bool, len(rows))
	for _, row := range rows {
		studied[row.Day] = row.Studied
	}

	view := &model.WeekView{Days: make([]model.DayStatus, 0, len(days))}
	for _, d := range days {
		key := calendar.Format(d)
		view.Days = append(view.Days, model.DayStatus{Date: key, Studied: studied[key]})
	}

	weekStart := calendar.Format(calendar.WeekStartMonday(refDay))
	forgiveness, err := s.forgiveness.ByWeek(ctx, userID, weekStart)
	switch {
	case errors.Is(err, repository.ErrForgivenessNotFound):
		view.ForgivenessUsed = false
	case err != nil:
		return nil, storageError("load weekly forgiveness", err)
	default:
		view.ForgivenessUsed = forgiveness.Used
	}

	return view, nil
}

// CurrentStreak counts consecutive studied days ending at today. An empty today uses
// the server clock in the configured timezone.
func (s *StreakService) CurrentStreak(ctx context.Context, userID, today string) (int, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return 0, err
	}

	end, err := s.day("today", today, true)
	if err != nil {
		return 0, err
	}

	start := calendar.AddDays(end, -StreakLookbackDays)
	rows, err := s.activities.Range(ctx, userID, calendar.Format(start), calendar.Format(end))
	if err != nil {
		return 0, storageError("load streak activity", err)
	}

	studied := make(map[string]bool, len(rows))
	for _, row := range rows {
		studied[row.Day] = row.Studied
	}

	streak := 0
	for cursor := end; streak < StreakLookbackDays && studied[calendar.Format(cursor)]; cursor = calendar.AddDays(cursor, -1) {
		streak++
	}

	return streak, nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/studybuddy/internal/calendar"
	"github.com/studybuddy/studybuddy/internal/validation"
)

// Wednesday 2025-03-12. Display week: Sun 03-09 .. Sat 03-15. ISO week starts Mon 03-10.
const wednesday = "2025-03-12T10:00:00Z"

func newStreakService(t *testing.T) (*StreakService, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewStreakService(memActivities{store}, memForgiveness{store}, time.UTC)
	svc.now = fixedClock(wednesday)
	return svc, store
}

func daysAgo(svc *StreakService, n int) string {
	return calendar.Format(calendar.AddDays(svc.Today(), -n))
}

func TestMarkStudiedTwiceKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	svc, store := newStreakService(t)

	first, err := svc.MarkStudied(ctx, "u1", "2025-03-12")
	require.NoError(t, err)
	second, err := svc.MarkStudied(ctx, "u1", "2025-03-12T18:45:00Z")
	require.NoError(t, err)

	assert.True(t, first.Studied)
	assert.True(t, second.Studied)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.activities, 1)
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		studied []int // days before today
		want    int
	}{
		{name: "no activity", want: 0},
		{name: "three consecutive days", studied: []int{0, 1, 2}, want: 3},
		{name: "gap yesterday", studied: []int{0, 2}, want: 1},
		{name: "today not studied", studied: []int{1, 2, 3}, want: 0},
		{name: "gap further back", studied: []int{0, 1, 2, 4, 5}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, _ := newStreakService(t)
			for _, n := range tt.studied {
				_, err := svc.MarkStudied(ctx, "u1", daysAgo(svc, n))
				require.NoError(t, err)
			}

			got, err := svc.CurrentStreak(ctx, "u1", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentStreakIsCappedAtLookback(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)
	for n := 0; n < 400; n++ {
		_, err := svc.MarkStudied(ctx, "u1", daysAgo(svc, n))
		require.NoError(t, err)
	}

	got, err := svc.CurrentStreak(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, StreakLookbackDays, got)
}

func TestCurrentStreakWithExplicitToday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)
	for _, day := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		_, err := svc.MarkStudied(ctx, "u1", day)
		require.NoError(t, err)
	}

	got, err := svc.CurrentStreak(ctx, "u1", "2025-01-03")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = svc.CurrentStreak(ctx, "u1", "2025-01-04")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestTodayUsesConfiguredTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	store := newMemStore()
	svc := NewStreakService(memActivities{store}, memForgiveness{store}, tokyo)
	svc.now = fixedClock("2025-03-12T20:00:00Z") // already the 13th in Tokyo

	assert.Equal(t, "2025-03-13", calendar.Format(svc.Today()))

	_, err = svc.MarkStudied(context.Background(), "u1", "2025-03-13")
	require.NoError(t, err)
	got, err := svc.CurrentStreak(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestForgiveMissedOncePerISOWeek(t *testing.T) {
	ctx := context.Background()
	svc, store := newStreakService(t)

	require.NoError(t, svc.ForgiveMissed(ctx, "u1", "2025-03-11"))

	// any other day of the Monday 03-10 week, Sunday 03-16 included, is refused
	for _, day := range []string{"2025-03-10", "2025-03-14", "2025-03-16"} {
		err := svc.ForgiveMissed(ctx, "u1", day)
		assert.ErrorIs(t, err, ErrForgivenessUsed, day)
		assert.Equal(t, "forgiveness already used this week", err.Error())
	}
	_, marked := store.activities[key("u1", "2025-03-14")]
	assert.False(t, marked, "refused forgiveness must not mark the day")

	// next ISO week starts Monday 03-17; previous one ended Sunday 03-09
	assert.NoError(t, svc.ForgiveMissed(ctx, "u1", "2025-03-17"))
	assert.NoError(t, svc.ForgiveMissed(ctx, "u1", "2025-03-09"))
	// other users have their own token
	assert.NoError(t, svc.ForgiveMissed(ctx, "u2", "2025-03-11"))
}

func TestForgivenDayKeepsStreak(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)

	_, err := svc.MarkStudied(ctx, "u1", daysAgo(svc, 0))
	require.NoError(t, err)
	_, err = svc.MarkStudied(ctx, "u1", daysAgo(svc, 2))
	require.NoError(t, err)
	require.NoError(t, svc.ForgiveMissed(ctx, "u1", daysAgo(svc, 1)))

	got, err := svc.CurrentStreak(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestWeekViewWednesday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)

	for _, day := range []string{"2025-03-08", "2025-03-09", "2025-03-12", "2025-03-15", "2025-03-16"} {
		_, err := svc.MarkStudied(ctx, "u1", day)
		require.NoError(t, err)
	}

	view, err := svc.WeekView(ctx, "u1", "2025-03-12")
	require.NoError(t, err)
	require.Len(t, view.Days, 7)

	want := map[string]bool{
		"2025-03-09": true,
		"2025-03-10": false,
		"2025-03-11": false,
		"2025-03-12": true,
		"2025-03-13": false,
		"2025-03-14": false,
		"2025-03-15": true,
	}
	for i, d := range view.Days {
		assert.Equal(t, calendar.Format(calendar.AddDays(calendar.WeekStartSunday(svc.Today()), i)), d.Date)
		assert.Equal(t, want[d.Date], d.Studied, d.Date)
	}
	assert.False(t, view.ForgivenessUsed)
}

func TestWeekViewAcceptsDatetimeAndDefaultsToToday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)

	fromDatetime, err := svc.WeekView(ctx, "u1", "2025-03-12T23:59:59Z")
	require.NoError(t, err)
	fromToday, err := svc.WeekView(ctx, "u1", "")
	require.NoError(t, err)

	assert.Equal(t, fromDatetime, fromToday)
	assert.Equal(t, "2025-03-09", fromToday.Days[0].Date)
}

func TestForgiveThenWeekView(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)

	require.NoError(t, svc.ForgiveMissed(ctx, "u1", "2025-03-11"))

	view, err := svc.WeekView(ctx, "u1", "2025-03-13")
	require.NoError(t, err)
	assert.True(t, view.ForgivenessUsed)
	for _, d := range view.Days {
		if d.Date == "2025-03-11" {
			assert.True(t, d.Studied)
		}
	}
}

// The display week starts on Sunday while forgiveness is tracked per Monday-start
// week. On a Sunday the two disagree; this pins both behaviors.
func TestWeekViewSundayUsesBothWeekConventions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)

	// consumes the token of the week starting Monday 03-10
	require.NoError(t, svc.ForgiveMissed(ctx, "u1", "2025-03-11"))

	sunday, err := svc.WeekView(ctx, "u1", "2025-03-16")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-16", sunday.Days[0].Date)
	assert.Equal(t, "2025-03-22", sunday.Days[6].Date)
	assert.True(t, sunday.ForgivenessUsed, "Sunday 03-16 belongs to the Monday 03-10 forgiveness week")

	monday, err := svc.WeekView(ctx, "u1", "2025-03-17")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-16", monday.Days[0].Date, "same display week as the Sunday")
	assert.False(t, monday.ForgivenessUsed, "Monday 03-17 opens a new forgiveness week")
}

func TestValidationErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStreakService(t)

	var verr *validation.Error

	_, err := svc.MarkStudied(ctx, "", "2025-03-12")
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "userId")

	_, err = svc.MarkStudied(ctx, "u1", "")
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "date")

	err = svc.ForgiveMissed(ctx, "u1", "not-a-date")
	require.True(t, errors.As(err, &verr))

	_, err = svc.WeekView(ctx, "u1", "13/03/2025")
	require.True(t, errors.As(err, &verr))

	_, err = svc.CurrentStreak(ctx, "u1", "tomorrow")
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "today")
}

func TestStorageErrorsAreTyped(t *testing.T) {
	ctx := context.Background()
	svc, store := newStreakService(t)
	boom := errors.New("disk on fire")
	store.failWith = boom

	_, err := svc.MarkStudied(ctx, "u1", "2025-03-12")
	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	assert.ErrorIs(t, err, boom)

	err = svc.ForgiveMissed(ctx, "u1", "2025-03-12")
	require.True(t, errors.As(err, &serr))
	assert.NotErrorIs(t, err, ErrForgivenessUsed)

	_, err = svc.WeekView(ctx, "u1", "2025-03-12")
	require.True(t, errors.As(err, &serr))

	_, err = svc.CurrentStreak(ctx, "u1", "")
	require.True(t, errors.As(err, &serr))
}

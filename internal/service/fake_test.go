package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/studybuddy/studybuddy/internal/model"
	"github.com/studybuddy/studybuddy/internal/repository"
)

// memStore is an in-memory stand-in for the ledger, forgiveness and session tables.
// failWith, when set, is returned from every call.
type memStore struct {
	mu          sync.Mutex
	activities  map[string]*model.DailyActivity     // user|day
	forgiveness map[string]*model.WeeklyForgiveness // user|week
	sessions    map[string]*model.FocusSession
	failWith    error
}

func newMemStore() *memStore {
	return &memStore{
		activities:  map[string]*model.DailyActivity{},
		forgiveness: map[string]*model.WeeklyForgiveness{},
		sessions:    map[string]*model.FocusSession{},
	}
}

func key(userID, day string) string { return userID + "|" + day }

func (m *memStore) markLocked(userID, day string) *model.DailyActivity {
	now := time.Now()
	a, ok := m.activities[key(userID, day)]
	if !ok {
		a = &model.DailyActivity{ID: key(userID, day), UserID: userID, Day: day, CreatedAt: now}
		m.activities[key(userID, day)] = a
	}
	a.Studied = true
	a.UpdatedAt = now
	return a
}

type memActivities struct{ *memStore }

func (m memActivities) MarkStudied(_ context.Context, userID, day string) (*model.DailyActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	a := *m.markLocked(userID, day)
	return &a, nil
}

func (m memActivities) Range(_ context.Context, userID, from, to string) ([]*model.DailyActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*model.DailyActivity
	for _, a := range m.activities {
		if a.UserID == userID && a.Day >= from && a.Day <= to {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m memActivities) ByDay(_ context.Context, userID, day string) (*model.DailyActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.activities[key(userID, day)]
	if !ok {
		return nil, repository.ErrActivityNotFound
	}
	c := *a
	return &c, nil
}

type memForgiveness struct{ *memStore }

func (m memForgiveness) ByWeek(_ context.Context, userID, weekStart string) (*model.WeeklyForgiveness, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	f, ok := m.forgiveness[key(userID, weekStart)]
	if !ok {
		return nil, repository.ErrForgivenessNotFound
	}
	c := *f
	return &c, nil
}

func (m memForgiveness) Forgive(_ context.Context, userID, weekStart, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if f, ok := m.forgiveness[key(userID, weekStart)]; ok && f.Used {
		return repository.ErrForgivenessUsed
	}
	m.forgiveness[key(userID, weekStart)] = &model.WeeklyForgiveness{
		UserID: userID, WeekStart: weekStart, Used: true, ForgivenDay: day,
	}
	m.markLocked(userID, day)
	return nil
}

type memSessions struct{ *memStore }

func (m memSessions) Create(_ context.Context, session *model.FocusSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, s := range m.sessions {
		if s.UserID == session.UserID && s.IsOpen() {
			return repository.ErrFocusSessionOpen
		}
	}
	c := *session
	m.sessions[session.ID] = &c
	return nil
}

func (m memSessions) ByID(_ context.Context, userID, sessionID string) (*model.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, repository.ErrFocusSessionNotFound
	}
	c := *s
	return &c, nil
}

func (m memSessions) Finish(_ context.Context, session *model.FocusSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[session.ID]
	if !ok || !s.IsOpen() {
		return repository.ErrFocusSessionClosed
	}
	c := *session
	m.sessions[session.ID] = &c
	if session.Completed && session.IsWork() {
		m.markLocked(session.UserID, *session.EndedDay)
	}
	return nil
}

func (m memSessions) Recent(_ context.Context, userID string, limit int) ([]*model.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.FocusSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m memSessions) CompletedWork(_ context.Context, userID, day string) ([]*model.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.FocusSession
	for _, s := range m.sessions {
		if s.UserID == userID && s.Completed && s.IsWork() && s.EndedDay != nil && *s.EndedDay == day {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func fixedClock(value string) func() time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

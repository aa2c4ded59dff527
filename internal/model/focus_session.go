package model

import (
	"time"
)

const (
	FocusKindWork       = "work"
	FocusKindShortBreak = "short_break"
	FocusKindLongBreak  = "long_break"
)

type FocusSession struct {
	ID             string     `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"userId"`
	Kind           string     `db:"kind" json:"kind"`
	PlannedMinutes int        `db:"planned_minutes" json:"plannedMinutes"`
	StartedAt      time.Time  `db:"started_at" json:"startedAt"`
	EndedAt        *time.Time `db:"ended_at" json:"endedAt,omitempty"`
	EndedDay       *string    `db:"ended_day" json:"endedDay,omitempty"` // calendar day of EndedAt
	Completed      bool       `db:"completed" json:"completed"`
	Interrupted    bool       `db:"interrupted" json:"interrupted"`
}

func (s *FocusSession) IsOpen() bool {
	return s.EndedAt == nil
}

func (s *FocusSession) IsWork() bool {
	return s.Kind == FocusKindWork
}

// FocusStats summarizes completed work sessions for one calendar day.
type FocusStats struct {
	Date              string `json:"date"`
	CompletedSessions int    `json:"completedSessions"`
	FocusMinutes      int    `json:"focusMinutes"`
}

func IsFocusKind(kind string) bool {
	switch kind {
	case FocusKindWork, FocusKindShortBreak, FocusKindLongBreak:
		return true
	}
	return false
}

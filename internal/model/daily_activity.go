package model

import (
	"time"
)

// DailyActivity is one row of the activity ledger: whether a user studied on a calendar day.
type DailyActivity struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Day       string    `db:"day" json:"date"` // YYYY-MM-DD
	Studied   bool      `db:"studied" json:"studied"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

package model

import (
	"time"
)

type WeeklyForgiveness struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	WeekStart   string    `db:"week_start" json:"weekStart"` // Monday, YYYY-MM-DD
	Used        bool      `db:"used" json:"used"`
	ForgivenDay string    `db:"forgiven_day" json:"forgivenDay"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

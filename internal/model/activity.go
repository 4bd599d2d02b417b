package model

import "time"

// Activity is one entry in a case's append-only activity log. Entries are
// immutable once created and owned by exactly one case.
type Activity struct {
	ID           int64     `json:"id" db:"id"`
	CaseID       int64     `json:"case_id" db:"case_id"`
	ActivityType Action    `json:"activity_type" db:"activity_type"`
	Description  string    `json:"description" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

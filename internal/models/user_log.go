package models

import "time"

// UserLog represents one entry in the user activity log. Rows are written by
// the auth and record-keeping flows; the archival core treats them as the
// fifth record kind, included only on explicit request.
type UserLog struct {
	ID         string     `db:"id" json:"id"`
	UserID     *string    `db:"user_id" json:"user_id,omitempty"`
	Action     string     `db:"action" json:"action"`
	Detail     string     `db:"detail" json:"detail"`
	IPAddress  string     `db:"ip_address" json:"ip_address"`
	UserAgent  string     `db:"user_agent" json:"user_agent"`
	Timestamp  time.Time  `db:"timestamp" json:"timestamp"`
	IsArchived bool       `db:"is_archived" json:"is_archived"`
	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

// UserLogFilter captures filtering criteria for listing user activity.
type UserLogFilter struct {
	UserID   string
	Action   string
	Archived bool
	Page     int
	PageSize int
}

package models

import "time"

// Assessment represents one flood-risk assessment logged by a staff member.
type Assessment struct {
	ID                   string     `db:"id" json:"id"`
	UserID               string     `db:"user_id" json:"user_id"`
	Barangay             string     `db:"barangay" json:"barangay"`
	Latitude             float64    `db:"latitude" json:"latitude"`
	Longitude            float64    `db:"longitude" json:"longitude"`
	FloodRiskCode        string     `db:"flood_risk_code" json:"flood_risk_code"`
	FloodRiskDescription string     `db:"flood_risk_description" json:"flood_risk_description"`
	Timestamp            time.Time  `db:"timestamp" json:"timestamp"`
	IsArchived           bool       `db:"is_archived" json:"is_archived"`
	ArchivedAt           *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

// AssessmentFilter captures filtering criteria for listing assessments.
type AssessmentFilter struct {
	Barangay      string
	FloodRiskCode string
	Archived      bool
	Page          int
	PageSize      int
}

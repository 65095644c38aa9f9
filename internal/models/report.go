package models

import "time"

// Report represents a citizen-facing flood-risk report generated from an
// assessment.
type Report struct {
	ID             string     `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"user_id"`
	AssessmentID   *string    `db:"assessment_id" json:"assessment_id,omitempty"`
	Barangay       string     `db:"barangay" json:"barangay"`
	Latitude       float64    `db:"latitude" json:"latitude"`
	Longitude      float64    `db:"longitude" json:"longitude"`
	FloodRiskCode  string     `db:"flood_risk_code" json:"flood_risk_code"`
	FloodRiskLabel string     `db:"flood_risk_label" json:"flood_risk_label"`
	Timestamp      time.Time  `db:"timestamp" json:"timestamp"`
	IsArchived     bool       `db:"is_archived" json:"is_archived"`
	ArchivedAt     *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

// ReportFilter captures filtering criteria for listing reports.
type ReportFilter struct {
	Barangay      string
	FloodRiskCode string
	Archived      bool
	Page          int
	PageSize      int
}

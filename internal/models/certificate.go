package models

import "time"

// Certificate represents one issued zoning certificate.
type Certificate struct {
	ID                  string     `db:"id" json:"id"`
	UserID              string     `db:"user_id" json:"user_id"`
	AssessmentID        *string    `db:"assessment_id" json:"assessment_id,omitempty"`
	EstablishmentName   string     `db:"establishment_name" json:"establishment_name"`
	OwnerName           string     `db:"owner_name" json:"owner_name"`
	Location            string     `db:"location" json:"location"`
	Barangay            string     `db:"barangay" json:"barangay"`
	Latitude            float64    `db:"latitude" json:"latitude"`
	Longitude           float64    `db:"longitude" json:"longitude"`
	FloodSusceptibility string     `db:"flood_susceptibility" json:"flood_susceptibility"`
	ZoneStatus          string     `db:"zone_status" json:"zone_status"`
	IssueDate           string     `db:"issue_date" json:"issue_date"`
	Timestamp           time.Time  `db:"timestamp" json:"timestamp"`
	IsArchived          bool       `db:"is_archived" json:"is_archived"`
	ArchivedAt          *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

// CertificateFilter captures filtering criteria for listing certificates.
type CertificateFilter struct {
	Barangay string
	Search   string
	Archived bool
	Page     int
	PageSize int
}

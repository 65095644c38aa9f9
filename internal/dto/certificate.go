package dto

// CreateCertificateRequest is the payload for issuing a zoning certificate.
type CreateCertificateRequest struct {
	AssessmentID        *string `json:"assessment_id"`
	EstablishmentName   string  `json:"establishment_name" validate:"required"`
	OwnerName           string  `json:"owner_name" validate:"required"`
	Location            string  `json:"location" validate:"required"`
	Barangay            string  `json:"barangay" validate:"required"`
	Latitude            float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude           float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	FloodSusceptibility string  `json:"flood_susceptibility" validate:"required"`
	ZoneStatus          string  `json:"zone_status" validate:"required"`
	IssueDate           string  `json:"issue_date" validate:"required"`
}

package dto

// CreateReportRequest is the payload for generating a citizen-facing report.
type CreateReportRequest struct {
	AssessmentID   *string `json:"assessment_id"`
	Barangay       string  `json:"barangay" validate:"required"`
	Latitude       float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude      float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	FloodRiskCode  string  `json:"flood_risk_code" validate:"required,oneof=VHF HF MF LF"`
	FloodRiskLabel string  `json:"flood_risk_label"`
}

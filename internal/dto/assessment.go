package dto

// CreateAssessmentRequest is the payload for logging a flood-risk assessment.
type CreateAssessmentRequest struct {
	Barangay             string  `json:"barangay" validate:"required"`
	Latitude             float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude            float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	FloodRiskCode        string  `json:"flood_risk_code" validate:"required,oneof=VHF HF MF LF"`
	FloodRiskDescription string  `json:"flood_risk_description"`
}

package models

// Flood susceptibility hazard codes from the city hazard maps.
const (
	RiskVeryHigh = "VHF"
	RiskHigh     = "HF"
	RiskModerate = "MF"
	RiskLow      = "LF"
)

var floodRiskDescriptions = map[string]string{
	RiskVeryHigh: "Very High Flood Susceptibility",
	RiskHigh:     "High Flood Susceptibility",
	RiskModerate: "Moderate Flood Susceptibility",
	RiskLow:      "Low Flood Susceptibility",
}

// FloodRiskDescription returns the canonical description for a hazard code,
// or "Unknown" for codes outside the map legend.
func FloodRiskDescription(code string) string {
	if desc, ok := floodRiskDescriptions[code]; ok {
		return desc
	}
	return "Unknown"
}

package dto

import "time"

// CreateFloodActivityRequest is the payload for logging a flood event
// register change.
type CreateFloodActivityRequest struct {
	Action            string    `json:"action" validate:"required,oneof=CREATE UPDATE DELETE"`
	FloodRecordID     *int64    `json:"flood_record_id"`
	EventType         string    `json:"event_type" validate:"required"`
	EventDate         time.Time `json:"event_date" validate:"required"`
	AffectedBarangays string    `json:"affected_barangays" validate:"required"`
	CasualtiesDead    int       `json:"casualties_dead" validate:"gte=0"`
	CasualtiesInjured int       `json:"casualties_injured" validate:"gte=0"`
	CasualtiesMissing int       `json:"casualties_missing" validate:"gte=0"`
	AffectedPersons   int       `json:"affected_persons" validate:"gte=0"`
	AffectedFamilies  int       `json:"affected_families" validate:"gte=0"`
	DamageTotalPHP    float64   `json:"damage_total_php" validate:"gte=0"`
}

package models

import "time"

// FloodActivityAction constants describe the tracked flood-record mutations.
const (
	FloodActionCreate = "CREATE"
	FloodActionUpdate = "UPDATE"
	FloodActionDelete = "DELETE"
)

// FloodActivity represents one tracked change to the flood event register.
type FloodActivity struct {
	ID                string     `db:"id" json:"id"`
	UserID            string     `db:"user_id" json:"user_id"`
	Action            string     `db:"action" json:"action"`
	FloodRecordID     *int64     `db:"flood_record_id" json:"flood_record_id,omitempty"`
	EventType         string     `db:"event_type" json:"event_type"`
	EventDate         time.Time  `db:"event_date" json:"event_date"`
	AffectedBarangays string     `db:"affected_barangays" json:"affected_barangays"`
	CasualtiesDead    int        `db:"casualties_dead" json:"casualties_dead"`
	CasualtiesInjured int        `db:"casualties_injured" json:"casualties_injured"`
	CasualtiesMissing int        `db:"casualties_missing" json:"casualties_missing"`
	AffectedPersons   int        `db:"affected_persons" json:"affected_persons"`
	AffectedFamilies  int        `db:"affected_families" json:"affected_families"`
	DamageTotalPHP    float64    `db:"damage_total_php" json:"damage_total_php"`
	Timestamp         time.Time  `db:"timestamp" json:"timestamp"`
	IsArchived        bool       `db:"is_archived" json:"is_archived"`
	ArchivedAt        *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

// TotalCasualties sums dead, injured and missing counts.
func (f *FloodActivity) TotalCasualties() int {
	return f.CasualtiesDead + f.CasualtiesInjured + f.CasualtiesMissing
}

// FloodActivityFilter captures filtering criteria for listing activities.
type FloodActivityFilter struct {
	Action   string
	Archived bool
	Page     int
	PageSize int
}

package models

// KindTally pairs active and archived row counts for one record kind.
type KindTally struct {
	Active   int64 `db:"active" json:"active"`
	Archived int64 `db:"archived" json:"archived"`
}

// DashboardStats aggregates record volumes and flood impact figures for the
// admin dashboard.
type DashboardStats struct {
	Records           map[RecordKind]KindTally `db:"-" json:"records"`
	CasualtiesDead    int64                    `db:"casualties_dead" json:"casualties_dead"`
	CasualtiesInjured int64                    `db:"casualties_injured" json:"casualties_injured"`
	CasualtiesMissing int64                    `db:"casualties_missing" json:"casualties_missing"`
	AffectedPersons   int64                    `db:"affected_persons" json:"affected_persons"`
	AffectedFamilies  int64                    `db:"affected_families" json:"affected_families"`
	DamageTotalPHP    float64                  `db:"damage_total_php" json:"damage_total_php"`
}

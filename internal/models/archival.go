package models

// RecordKind identifies one of the archivable activity record tables.
type RecordKind string

const (
	KindAssessments     RecordKind = "assessments"
	KindReports         RecordKind = "reports"
	KindCertificates    RecordKind = "certificates"
	KindFloodActivities RecordKind = "flood_activities"
	KindUserLogs        RecordKind = "user_logs"
)

// RecordKinds lists every archivable kind in reporting order. Archive and
// restore runs walk this slice so every kind shows up in summaries, even
// when its count is zero.
var RecordKinds = []RecordKind{
	KindAssessments,
	KindReports,
	KindCertificates,
	KindFloodActivities,
	KindUserLogs,
}

// Valid reports whether the kind names a known record table.
func (k RecordKind) Valid() bool {
	switch k {
	case KindAssessments, KindReports, KindCertificates, KindFloodActivities, KindUserLogs:
		return true
	}
	return false
}

// Table returns the backing table name for the kind.
func (k RecordKind) Table() string {
	switch k {
	case KindAssessments:
		return "assessment_records"
	case KindReports:
		return "report_records"
	case KindCertificates:
		return "certificate_records"
	case KindFloodActivities:
		return "flood_activity_records"
	case KindUserLogs:
		return "user_logs"
	}
	return ""
}

// Label returns the operator-facing name used in summaries.
func (k RecordKind) Label() string {
	switch k {
	case KindAssessments:
		return "Assessment Records"
	case KindReports:
		return "Report Records"
	case KindCertificates:
		return "Certificate Records"
	case KindFloodActivities:
		return "Flood Record Activities"
	case KindUserLogs:
		return "User Activity Logs"
	}
	return string(k)
}

// ArchivalSummary holds per-kind row counts plus the total across kinds.
type ArchivalSummary struct {
	Counts map[RecordKind]int64 `json:"counts"`
	Total  int64                `json:"total"`
}

// NewArchivalSummary returns a summary with every kind present at zero.
func NewArchivalSummary() ArchivalSummary {
	counts := make(map[RecordKind]int64, len(RecordKinds))
	for _, kind := range RecordKinds {
		counts[kind] = 0
	}
	return ArchivalSummary{Counts: counts}
}

// Set records the count for a kind and keeps the total in sync.
func (s *ArchivalSummary) Set(kind RecordKind, count int64) {
	if s.Counts == nil {
		s.Counts = make(map[RecordKind]int64, len(RecordKinds))
	}
	s.Total += count - s.Counts[kind]
	s.Counts[kind] = count
}

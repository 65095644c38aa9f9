package dto

// ArchiveRunRequest triggers an archive run over the activity record tables.
// Mode selects preview or execution; execute runs additionally require
// Confirm, the pre-validated consent flag for non-interactive callers.
type ArchiveRunRequest struct {
	Mode        string `json:"mode" validate:"required,oneof=dry-run execute"`
	Years       int    `json:"years"`
	IncludeLogs bool   `json:"include_logs"`
	Confirm     bool   `json:"confirm"`
}

// RestoreRunRequest triggers a restore run. At least one selector (all,
// type, or a date range) must be supplied; type and range narrow together.
type RestoreRunRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=dry-run execute"`
	All      bool   `json:"all"`
	Type     string `json:"type"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Confirm  bool   `json:"confirm"`
}

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/internal/service"
)

func TestPrintSummaryListsEveryKindAndTotal(t *testing.T) {
	summary := models.NewArchivalSummary()
	summary.Set(models.KindAssessments, 15)
	summary.Set(models.KindReports, 8)
	summary.Set(models.KindUserLogs, 230)

	out := &bytes.Buffer{}
	printSummary(out, "Records to be archived:", summary)

	text := out.String()
	assert.Contains(t, text, "Records to be archived:")
	assert.Contains(t, text, "Assessment Records:")
	assert.Contains(t, text, "15")
	assert.Contains(t, text, "Certificate Records:")
	assert.Contains(t, text, "User Activity Logs:")
	assert.Contains(t, text, "TOTAL:")
	assert.Contains(t, text, "253")

	// Kinds print in registry order, TOTAL last.
	require.Less(t, strings.Index(text, "Assessment Records:"), strings.Index(text, "User Activity Logs:"))
	require.Less(t, strings.Index(text, "User Activity Logs:"), strings.Index(text, "TOTAL:"))
}

func TestPrintArchiveHeaderShowsCutoffAndMode(t *testing.T) {
	out := &bytes.Buffer{}
	cutoff := time.Date(2024, 8, 24, 6, 0, 0, 0, time.UTC)

	printArchiveHeader(out, cutoff, true)
	assert.Contains(t, out.String(), "ARCHIVING RECORDS OLDER THAN: 2024-08-24 06:00:00")
	assert.Contains(t, out.String(), "DRY RUN (preview only)")

	out.Reset()
	printArchiveHeader(out, cutoff, false)
	assert.Contains(t, out.String(), "EXECUTE (will archive)")
}

func TestConfirmPromptAcceptsYesOnly(t *testing.T) {
	summary := models.NewArchivalSummary()
	summary.Set(models.KindReports, 3)

	cases := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"no\n", false},
		{"y\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tc := range cases {
		out := &bytes.Buffer{}
		confirm := confirmPrompt(out, strings.NewReader(tc.input), "This action cannot be undone easily.")
		assert.Equalf(t, tc.want, confirm(summary), "input %q", tc.input)
		assert.Contains(t, out.String(), "about to affect 3 records")
		assert.Contains(t, out.String(), `Type "yes" to proceed, or "no" to cancel:`)
	}
}

func TestPrintResultCompletedRun(t *testing.T) {
	applied := models.NewArchivalSummary()
	applied.Set(models.KindAssessments, 15)
	applied.Set(models.KindFloodActivities, 4)

	out := &bytes.Buffer{}
	printResult(out, "archive", &service.ArchivalResult{
		Status:  service.RunCompleted,
		Applied: &applied,
	})

	text := out.String()
	assert.Contains(t, text, "Archived 15 assessment records")
	assert.Contains(t, text, "ARCHIVING COMPLETE")
	assert.Contains(t, text, "Total records archived: 19")
	assert.Contains(t, text, "What happens next:")
	assert.Contains(t, text, "can be restored if needed")
}

func TestPrintResultRestoreAndCancelled(t *testing.T) {
	applied := models.NewArchivalSummary()
	applied.Set(models.KindReports, 6)

	out := &bytes.Buffer{}
	printResult(out, "restore", &service.ArchivalResult{
		Status:  service.RunCompleted,
		Applied: &applied,
	})
	assert.Contains(t, out.String(), "RESTORATION COMPLETE")
	assert.Contains(t, out.String(), "Total records restored: 6")

	out.Reset()
	printResult(out, "restore", &service.ArchivalResult{Status: service.RunCancelled})
	assert.Contains(t, out.String(), "Restoration cancelled.")

	out.Reset()
	printResult(out, "archive", &service.ArchivalResult{Status: service.RunNothingToDo})
	assert.Contains(t, out.String(), "No records to archive.")
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/internal/service"
)

var (
	archiveYears       int
	archiveDryRun      bool
	archiveExecute     bool
	archiveIncludeLogs bool
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive old activity records",
	Long: `Archive activity records older than the given number of years.

Archived records are excluded from normal views but remain in the
database and can be restored. User activity logs are skipped unless
--include-logs is given.

Run with --dry-run first to preview, then --execute to apply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if !cmd.Flags().Changed("years") {
			archiveYears = rt.cfg.Archival.DefaultYears
		}

		out := cmd.OutOrStdout()
		opts := service.ArchiveOptions{
			DryRun:      archiveDryRun,
			Execute:     archiveExecute,
			Years:       archiveYears,
			IncludeLogs: archiveIncludeLogs,
		}

		if archiveDryRun != archiveExecute {
			// Display-only mirror of the cutoff the run will use.
			printArchiveHeader(out, time.Now().UTC().AddDate(0, 0, -365*archiveYears), archiveDryRun)
		}

		summaryTitle := fmt.Sprintf("Records to archive (older than %d %s):", archiveYears, pluralYears(archiveYears))
		confirm := func(summary models.ArchivalSummary) bool {
			printSummary(out, summaryTitle, summary)
			prompt := confirmPrompt(out, stdinReader, "Archived records will not appear in normal views but can be restored.")
			if !prompt(summary) {
				return false
			}
			fmt.Fprintln(out, "\nArchiving records...")
			return true
		}

		result, err := rt.service.Archive(cmd.Context(), opts, confirm, nil)
		if err != nil {
			return err
		}

		switch result.Status {
		case service.RunDryRun:
			printSummary(out, summaryTitle, result.Previewed)
			printDryRunFooter(out, "archiving")
		case service.RunNothingToDo:
			printSummary(out, summaryTitle, result.Previewed)
			fmt.Fprintln(out, "\nNo records to archive.")
		default:
			printResult(out, "archive", result)
		}

		// Declined confirmation is a normal abort, not an error.
		return outputJSON(result)
	},
}

func pluralYears(years int) string {
	if years == 1 {
		return "year"
	}
	return "years"
}

func init() {
	archiveCmd.Flags().IntVar(&archiveYears, "years", 2, "archive records older than this many years")
	archiveCmd.Flags().BoolVar(&archiveDryRun, "dry-run", false, "show what would be archived without archiving")
	archiveCmd.Flags().BoolVar(&archiveExecute, "execute", false, "actually perform the archiving")
	archiveCmd.Flags().BoolVar(&archiveIncludeLogs, "include-logs", false, "also archive user activity logs")
	rootCmd.AddCommand(archiveCmd)
}

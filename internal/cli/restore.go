package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/internal/service"
)

var (
	restoreAll      bool
	restoreType     string
	restoreDateFrom string
	restoreDateTo   string
	restoreDryRun   bool
	restoreExecute  bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore archived records to active status",
	Long: `Restore archived activity records back to active status.

Select records with --all, --type, or a --date-from/--date-to range
(inclusive calendar days matching the original record timestamps).
Type and range combine when both are given.

Run with --dry-run first to preview, then --execute to apply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		out := cmd.OutOrStdout()
		opts := service.RestoreOptions{
			DryRun:   restoreDryRun,
			Execute:  restoreExecute,
			All:      restoreAll,
			Type:     restoreType,
			DateFrom: restoreDateFrom,
			DateTo:   restoreDateTo,
		}

		if restoreDryRun != restoreExecute {
			printRestoreHeader(out, restoreDryRun)
		}

		confirm := func(summary models.ArchivalSummary) bool {
			printSummary(out, "Records to restore:", summary)
			prompt := confirmPrompt(out, stdinReader, "They will appear again in normal activity views.")
			if !prompt(summary) {
				return false
			}
			fmt.Fprintln(out, "\nRestoring records...")
			return true
		}

		result, err := rt.service.Restore(cmd.Context(), opts, confirm, nil)
		if err != nil {
			return err
		}

		switch result.Status {
		case service.RunDryRun:
			printSummary(out, "Records to restore:", result.Previewed)
			printDryRunFooter(out, "restoration")
		case service.RunNothingToDo:
			printSummary(out, "Records to restore:", result.Previewed)
			fmt.Fprintln(out, "\nNo records to restore.")
		default:
			printResult(out, "restore", result)
		}

		// Declined confirmation is a normal abort, not an error.
		return outputJSON(result)
	},
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreAll, "all", false, "restore all archived records")
	restoreCmd.Flags().StringVar(&restoreType, "type", "", "restore only one record type (assessments, reports, certificates, flood_activities, user_logs)")
	restoreCmd.Flags().StringVar(&restoreDateFrom, "date-from", "", "restore records from this date (YYYY-MM-DD)")
	restoreCmd.Flags().StringVar(&restoreDateTo, "date-to", "", "restore records up to this date (YYYY-MM-DD)")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "show what would be restored without restoring")
	restoreCmd.Flags().BoolVar(&restoreExecute, "execute", false, "actually perform the restoration")
	rootCmd.AddCommand(restoreCmd)
}

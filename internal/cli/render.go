package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/internal/service"
)

const rule = "======================================================================"

func printArchiveHeader(out io.Writer, cutoff time.Time, dryRun bool) {
	mode := "EXECUTE (will archive)"
	if dryRun {
		mode = "DRY RUN (preview only)"
	}
	fmt.Fprintf(out, "\n%s\n", rule)
	fmt.Fprintf(out, "ARCHIVING RECORDS OLDER THAN: %s\n", cutoff.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "MODE: %s\n", mode)
	fmt.Fprintf(out, "%s\n", rule)
}

func printRestoreHeader(out io.Writer, dryRun bool) {
	mode := "EXECUTE (will restore)"
	if dryRun {
		mode = "DRY RUN (preview only)"
	}
	fmt.Fprintf(out, "\n%s\n", rule)
	fmt.Fprintln(out, "RESTORING ARCHIVED RECORDS")
	fmt.Fprintf(out, "MODE: %s\n", mode)
	fmt.Fprintf(out, "%s\n", rule)
}

func printSummary(out io.Writer, title string, summary models.ArchivalSummary) {
	fmt.Fprintf(out, "\n%s\n\n", title)
	for _, kind := range models.RecordKinds {
		fmt.Fprintf(out, "  - %-24s %8d\n", kind.Label()+":", summary.Counts[kind])
	}
	fmt.Fprintf(out, "  %s\n", strings.Repeat("-", 35))
	fmt.Fprintf(out, "  %-26s %8d\n", "TOTAL:", summary.Total)
}

func printDryRunFooter(out io.Writer, operation string) {
	fmt.Fprintf(out, "\nDry run complete. No records were modified.\n")
	fmt.Fprintf(out, "  Run with --execute to perform the %s.\n", operation)
}

// confirmPrompt blocks on standard input until the operator answers. Only the
// exact token "yes" (case-insensitive) proceeds.
func confirmPrompt(out io.Writer, in io.Reader, warning string) service.ConfirmFunc {
	return func(summary models.ArchivalSummary) bool {
		fmt.Fprintf(out, "\nWARNING: you are about to affect %d records.\n", summary.Total)
		fmt.Fprintf(out, "   %s\n\n", warning)
		fmt.Fprint(out, `Type "yes" to proceed, or "no" to cancel: `)

		reader := bufio.NewReader(in)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "yes")
	}
}

func printResult(out io.Writer, operation string, result *service.ArchivalResult) {
	switch result.Status {
	case service.RunNothingToDo:
		fmt.Fprintf(out, "\nNo records to %s.\n", operation)
	case service.RunCancelled:
		verb := "Archiving"
		if operation == "restore" {
			verb = "Restoration"
		}
		fmt.Fprintf(out, "%s cancelled.\n", verb)
	case service.RunCompleted:
		printCompletion(out, operation, result.Applied)
	}
}

func printCompletion(out io.Writer, operation string, applied *models.ArchivalSummary) {
	if applied == nil {
		return
	}
	for _, kind := range models.RecordKinds {
		if count, ok := applied.Counts[kind]; ok {
			verb := "Archived"
			if operation == "restore" {
				verb = "Restored"
			}
			fmt.Fprintf(out, "  %s %d %s\n", verb, count, strings.ToLower(kind.Label()))
		}
	}

	fmt.Fprintf(out, "\n%s\n", rule)
	if operation == "restore" {
		fmt.Fprintln(out, "RESTORATION COMPLETE")
		fmt.Fprintf(out, "%s\n", rule)
		fmt.Fprintf(out, "Total records restored: %d\n\n", applied.Total)
		fmt.Fprintln(out, "What happens next:")
		fmt.Fprintln(out, "  - Restored records now appear in normal activity views")
		fmt.Fprintln(out, "  - They are included in all filters and searches")
		fmt.Fprintln(out, "  - They can be archived again if needed")
	} else {
		fmt.Fprintln(out, "ARCHIVING COMPLETE")
		fmt.Fprintf(out, "%s\n", rule)
		fmt.Fprintf(out, "Total records archived: %d\n\n", applied.Total)
		fmt.Fprintln(out, "What happens next:")
		fmt.Fprintln(out, "  - Archived records are excluded from normal activity views")
		fmt.Fprintln(out, "  - They remain in the database and can be restored if needed")
		fmt.Fprintln(out, "  - You can view archived records using the archived records view")
	}
	fmt.Fprintf(out, "%s\n", rule)
}

var stdinReader io.Reader = os.Stdin

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dsmi313/tagratecheck/internal/cmd/emoji"
	"github.com/dsmi313/tagratecheck/internal/cmd/output"
	"github.com/dsmi313/tagratecheck/internal/cmd/table"
	"github.com/dsmi313/tagratecheck/pkg/errors"
	"github.com/dsmi313/tagratecheck/pkg/reconcile"
)

var (
	checkInputs     *inputFlags
	checkByMark     bool
	checkDerivation bool
)

// checkCmd runs the full reconciliation pass and prints the report.
var checkCmd = &cobra.Command{
	Use:   "check [dataset]",
	Short: "Check tag-rate coverage for a trap-record dataset",
	Long: `Check classifies every trap record's release-group assignment, finds
hatchery release groups that lack a tag rate, validates the tag-rate table,
and prints a diagnostic report ending in a single PASS/FAIL verdict.

The run fails (exit status 1) exactly when at least one assigned release
group has no tag rate. Other data anomalies are reported but never fail
the run.

Examples:
  tagratecheck check SY2023Steelhead
  tagratecheck check SY2023Steelhead --dir ./data --check-derivation
  tagratecheck check --trap trap.csv --tag-rates rates.csv --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkInputs = addInputFlags(checkCmd)
	checkCmd.Flags().BoolVar(&checkByMark, "by-mark", false,
		"Add a mark-status (LGDMarkAD) breakdown to the classification")
	checkCmd.Flags().BoolVar(&checkDerivation, "check-derivation", false,
		"Re-derive each record's release group and report disagreements")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dataset, trapPath, ratePath, err := checkInputs.resolve(args)
	if err != nil {
		return err
	}

	records, rates, err := checkInputs.loadTables(trapPath, ratePath)
	if err != nil {
		return err
	}

	report := reconcile.Run(records, rates, reconcile.Options{
		Dataset:         dataset,
		ByMark:          checkByMark,
		CheckDerivation: checkDerivation,
	})

	format, err := output.ParseFormat(globalFlags.Output)
	if err != nil {
		return err
	}
	if format == output.FormatJSON || format == output.FormatYAML {
		if err := output.NewFormatter(format).Format(os.Stdout, report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if report.Failed() {
		return errors.New("tag-rate coverage check failed")
	}
	return nil
}

// printReport renders the console report in its contractual order: input
// counts, classification, missing groups, hatchery coverage, anomalies,
// verdict.
func printReport(report *reconcile.Report) {
	formatter := &output.TableFormatter{}

	if report.Metadata.Dataset != "" {
		fmt.Printf("Dataset: %s\n", report.Metadata.Dataset)
	}
	fmt.Printf("Trap records: %d\n", report.Metadata.TrapRecords)
	fmt.Printf("Tag-rate entries: %d\n", report.Metadata.TagRateEntries)
	fmt.Println()

	fmt.Println("Release-group classification:")
	_ = formatter.Format(os.Stdout, output.FromTable(table.ClassificationToTableData(report.Classification)))
	if unknown := report.Classification.UnknownRearTypes(); len(unknown) > 0 {
		for _, rear := range unknown {
			fmt.Printf("%s Unrecognized rear type %q\n", emoji.Unknown, string(rear))
		}
	}
	if report.Classification.ByMark != nil {
		fmt.Println()
		fmt.Println("By mark status:")
		_ = formatter.Format(os.Stdout, output.FromTable(table.MarkBreakdownToTableData(report.Classification)))
	}
	fmt.Println()

	if report.Coverage.Empty() {
		fmt.Printf("%s All assigned release groups have tag rates\n", emoji.Success)
	} else {
		fmt.Printf("%s Release groups missing tag rates (%d fish affected):\n",
			emoji.Error, report.Coverage.TotalAffected)
		_ = formatter.Format(os.Stdout, output.FromTable(table.CoverageToTableData(report.Coverage)))
	}
	fmt.Println()

	join := report.HatcheryJoin
	fmt.Printf("Hatchery fish with assignments: %d (%d with tag rate, %d missing)\n",
		join.Total, join.WithRate, join.MissingRate)
	fmt.Println()

	printAnomalies(report.Anomalies, reconcile.AnomalyInvalidRate, "Invalid tag rates:")
	printAnomalies(report.Anomalies, reconcile.AnomalyDuplicateGroup, "Duplicate release groups:")
	printAnomalies(report.Anomalies, reconcile.AnomalyDerivationMismatch, "Derivation mismatches:")

	if report.Failed() {
		fmt.Printf("%s FAIL: %d release group(s) missing tag rates\n",
			emoji.Error, len(report.Coverage.Missing))
	} else {
		fmt.Printf("%s PASS\n", emoji.Success)
	}
}

func printAnomalies(anomalies []reconcile.Anomaly, kind reconcile.AnomalyKind, title string) {
	subset := reconcile.FilterAnomalies(anomalies, kind)
	if len(subset) == 0 {
		return
	}
	fmt.Printf("%s %s\n", emoji.Warning, title)
	for _, a := range subset {
		fmt.Printf("  - %s\n", a.Message)
	}
	fmt.Println()
}

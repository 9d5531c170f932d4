package cmd

import (
	"fmt"

	"tarcheck/core/coverage"

	"github.com/spf13/cobra"
)

var (
	coverageFlags    ruleFlags
	coverageMaxStrip int
	coverageJSON     string
)

// coverageCmd reports files on disk that are absent from an archive.
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "List files in a directory that are not in the archive",
	Long: `Compares the regular files below --dir with the members of the archive,
stripping 0 up to --max-strip leading components from member paths, and lists
the files that the archive does not contain.`,
	RunE: runCoverage,
}

func init() {
	coverageFlags.register(coverageCmd)
	coverageCmd.Flags().IntVar(&coverageMaxStrip, "max-strip", 0, "Highest strip level to try; overrides CHECK_COVERAGE_MAX_STRIP")
	coverageCmd.Flags().StringVar(&coverageJSON, "json", "", "Also write the report as JSON to this file")
	RootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	maxStrip := rt.cfg.Check.CoverageMaxStrip
	if cmd.Flags().Changed("max-strip") {
		maxStrip = coverageMaxStrip
	}

	m, err := coverageFlags.matcher(rt.cfg.Check.WildcardSyntax)
	if err != nil {
		return err
	}

	report, err := coverage.NewReporter(rt.opener, maxStrip, rt.logger).
		Report(cmd.Context(), coverageFlags.dir, coverageFlags.tarPath, m)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.String())
	if coverageJSON != "" {
		return writeJSON(coverageJSON, report)
	}
	return nil
}

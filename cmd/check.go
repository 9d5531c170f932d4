package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tarcheck/core/archive"
	"tarcheck/core/coverage"
	"tarcheck/core/reconcile"
	"tarcheck/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	checkFlags      ruleFlags
	checkStrip      int
	checkAlgorithm  string
	checkJSON       string
	checkNoCoverage bool
)

// checkCmd verifies an archive against a directory.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the checksum of every archived file with its original",
	Long: `Streams the archive once and compares the checksum of each regular file with
the file it was archived from. Directories are skipped, symlinks are skipped
with a warning, and excluded paths are ignored.

A coverage report listing files on disk that are absent from the archive is
printed first. The command exits with status 1 when any checksum differs.

Examples:
  tarcheck check --tar_path backup.tar.bz2 --dir /srv/data
  tarcheck check --tar_path s3://backups/data.tar.zst --dir /srv/data --exclude '*.log'
  tar -cf - data | tarcheck check --tar_path - --dir data --json report.json`,
	RunE: runCheck,
}

func init() {
	checkFlags.register(checkCmd)
	checkCmd.Flags().IntVar(&checkStrip, "strip-components", -1, "Drop this many leading path components from archive members (-1 detects per member)")
	checkCmd.Flags().StringVar(&checkAlgorithm, "algorithm", "", "Checksum algorithm (md5, sha256, sha384, sha512); overrides CHECK_ALGORITHM")
	checkCmd.Flags().StringVar(&checkJSON, "json", "", "Also write the report as JSON to this file")
	checkCmd.Flags().BoolVar(&checkNoCoverage, "no-coverage", false, "Skip the coverage report")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	if cmd.Flags().Changed("algorithm") {
		rt.cfg.Check.Algorithm = checkAlgorithm
	}
	if cmd.Flags().Changed("strip-components") {
		rt.cfg.Check.StripComponents = checkStrip
	}

	opts, err := reconcile.OptionsFromConfig(rt.cfg.Check)
	if err != nil {
		return err
	}
	m, err := checkFlags.matcher(rt.cfg.Check.WildcardSyntax)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := &audit.Report{}

	switch {
	case checkNoCoverage:
	case archive.IsStdin(checkFlags.tarPath):
		rt.logger.Warn("Coverage skipped, standard input can only be read once")
	default:
		cov, err := coverage.NewReporter(rt.opener, rt.cfg.Check.CoverageMaxStrip, rt.logger).
			Report(ctx, checkFlags.dir, checkFlags.tarPath, m)
		if err != nil {
			// Coverage is advisory; the verification pass reports real failures.
			rt.logger.Warn("Coverage report unavailable", zap.Error(err))
		} else {
			fmt.Fprint(out, cov.String())
			report.Coverage = cov
		}
	}

	res, err := reconcile.NewEngine(rt.opener, m, rt.logger, opts).Run(ctx, checkFlags.tarPath, checkFlags.dir)
	if err != nil {
		return err
	}
	report.Result = res

	printResult(out, res)

	if checkJSON != "" {
		if err := writeJSON(checkJSON, report); err != nil {
			return err
		}
	}

	if !res.OK() {
		return reconcile.ErrMismatches
	}
	return nil
}

func printResult(w io.Writer, res *reconcile.Result) {
	fmt.Fprintf(w, "Total files in the archive: %d\n", res.TotalFiles)
	fmt.Fprintf(w, "Number of files that differ between the archive and original: %d\n", len(res.Errors))
	if len(res.Errors) > 0 {
		fmt.Fprintln(w, "FILES different:")
		for _, m := range res.Errors {
			fmt.Fprintln(w, m.String())
		}
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

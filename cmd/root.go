package cmd

import (
	"fmt"
	"os"

	"tarcheck/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel  string
	logFormat string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tarcheck",
	Short: "Verify tar archives against the directories they were built from",
	Long: `tarcheck streams a tar archive once, checksums every regular file in it and
compares each digest with the matching file on disk. It also reports files
present on disk that never made it into the archive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console output with ISO8601 timestamps suits interactive use.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log encoding (console or json); overrides LOG_FORMAT")
}

package cmd

import (
	"fmt"

	"tarcheck/core/archive"
	"tarcheck/core/config"
	"tarcheck/core/logger"
	"tarcheck/core/match"
	"tarcheck/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ruleFlags are the exclusion flags shared by check and coverage.
type ruleFlags struct {
	tarPath      string
	dir          string
	exclude      string
	excludeRegex string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tarPath, "tar_path", "", "Path to the tar archive (local path, s3://bucket/key or - for stdin)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Path to the directory that has been archived")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "A shell wildcard telling which files to exclude by name")
	cmd.Flags().StringVar(&f.excludeRegex, "exclude_regex", "", "A regex telling which files to exclude by name")
	_ = cmd.MarkFlagRequired("tar_path")
	_ = cmd.MarkFlagRequired("dir")
	cmd.MarkFlagsMutuallyExclusive("exclude", "exclude_regex")
}

func (f *ruleFlags) matcher(syntax string) (*match.Matcher, error) {
	s, err := match.ParseSyntax(syntax)
	if err != nil {
		return nil, err
	}
	return match.Compile(match.Rule{Wildcard: f.exclude, Regex: f.excludeRegex, Syntax: s})
}

// deps bundles what every command needs once configuration is loaded.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	opener *archive.Opener
}

func setup(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// s3:// locations are only served when storage is configured.
	var client storage.Client
	if cfg.Storage.Endpoint != "" {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	return &deps{cfg: cfg, logger: l, opener: archive.NewOpener(client).WithStdin(cmd.InOrStdin())}, nil
}

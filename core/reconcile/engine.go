package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"tarcheck/core/archive"
	"tarcheck/core/checksum"
	"tarcheck/core/fsscan"
	"tarcheck/core/match"
	"tarcheck/core/resolve"

	"go.uber.org/zap"
)

// Engine runs verification passes.
type Engine struct {
	opener  *archive.Opener
	matcher *match.Matcher
	logger  *zap.Logger
	opts    Options
}

// NewEngine creates an engine. A nil matcher excludes nothing; a nil logger
// discards diagnostics.
func NewEngine(opener *archive.Opener, matcher *match.Matcher, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Algorithm == "" {
		opts.Algorithm = checksum.MD5
	}
	if opts.FileBlockSize <= 0 {
		opts.FileBlockSize = checksum.FileBlockSize
	}
	if opts.ArchiveBlockSize <= 0 {
		opts.ArchiveBlockSize = checksum.ArchiveBlockSize
	}
	return &Engine{opener: opener, matcher: matcher, logger: logger, opts: opts}
}

// Run verifies every regular file of the archive at location against dir.
// It returns a fatal error for a missing archive location, an unusable
// directory, an unreadable archive, or a member with no readable counterpart.
func (e *Engine) Run(ctx context.Context, location, dir string) (*Result, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: missing path to the tar archive", ErrInvalidInput)
	}
	if err := fsscan.CheckDir(dir); err != nil {
		return nil, err
	}

	resolver, err := resolve.New(dir, resolve.ForStripLevel(e.opts.StripComponents)...)
	if err != nil {
		return nil, err
	}

	rc, err := e.opener.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r, err := archive.NewReader(rc)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := &Result{
		Errors:      []Mismatch{},
		Algorithm:   e.opts.Algorithm,
		Compression: r.Compression(),
	}
	log := e.logger.With(zap.String("archive", location), zap.String("dir", resolver.Root()))
	log.Debug("Verification started", zap.String("compression", string(r.Compression())))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if err := e.check(entry, resolver, result, log); err != nil {
			return nil, err
		}
	}

	log.Info("Verification completed",
		zap.Int("total_files", result.TotalFiles),
		zap.Int("mismatches", len(result.Errors)),
		zap.Int("excluded", result.Skipped.Excluded),
		zap.Int("symlinks", result.Skipped.Symlinks),
	)
	return result, nil
}

// check moves one member through its lifecycle.
func (e *Engine) check(entry *archive.Entry, resolver *resolve.Resolver, result *Result, log *zap.Logger) error {
	l := log.With(zap.String("path", entry.Name))

	switch entry.Kind {
	case archive.KindRegular:
	case archive.KindSymlink:
		result.Skipped.Symlinks++
		l.Warn("Archive contains a symlink that isn't dereferenced, skipping",
			zap.String("state", string(StateSkippedSymlink)),
			zap.String("target", entry.Linkname))
		return nil
	case archive.KindDirectory:
		result.Skipped.Directories++
		l.Debug("Not a file, skipping checksum", zap.String("state", string(StateSkippedNonFile)))
		return nil
	default:
		result.Skipped.Other++
		l.Debug("Not a file, skipping checksum", zap.String("state", string(StateSkippedNonFile)))
		return nil
	}

	if e.matcher.IsExcluded(entry.Path) {
		result.Skipped.Excluded++
		l.Debug("Excluded by rule", zap.String("state", string(StateSkippedExcluded)))
		return nil
	}

	res, err := resolver.Resolve(entry.Path)
	if err != nil {
		return err
	}
	l.Debug("Resolved on-disk counterpart",
		zap.String("state", string(StateResolved)),
		zap.String("file", res.Path),
		zap.String("strategy", res.Strategy))

	content, err := entry.Open()
	if err != nil {
		return err
	}
	archived, err := checksum.Sum(content, e.opts.Algorithm, e.opts.ArchiveBlockSize)
	if err != nil {
		return fmt.Errorf("checksum archived %s: %w", entry.Name, err)
	}
	raw, err := checksum.SumFileBlocks(res.Path, e.opts.Algorithm, e.opts.FileBlockSize)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: this user can't access %s", ErrPermissionDenied, res.Path)
		}
		return fmt.Errorf("checksum %s: %w", res.Path, err)
	}

	result.TotalFiles++
	if !raw.Equal(archived) {
		m := Mismatch{Path: entry.Name, Expected: raw.Hex, Actual: archived.Hex}
		result.Errors = append(result.Errors, m)
		l.Warn("Checksums differ",
			zap.String("state", string(StateMismatched)),
			zap.String("expected", m.Expected),
			zap.String("actual", m.Actual))
		return nil
	}

	l.Debug("Checksums match", zap.String("state", string(StateMatched)), zap.String("checksum", raw.Hex))
	return nil
}

package audit

import (
	"context"
	"fmt"

	"tarcheck/core/archive"
	"tarcheck/core/checksum"
	"tarcheck/core/coverage"
	"tarcheck/core/match"
	"tarcheck/core/reconcile"

	"go.uber.org/zap"
)

// Request describes one audit.
type Request struct {
	// Archive is a local path or an s3:// URI.
	Archive string `json:"archive"`
	// Dir is the directory the archive was built from.
	Dir          string `json:"dir"`
	Exclude      string `json:"exclude,omitempty"`
	ExcludeRegex string `json:"exclude_regex,omitempty"`
	// Algorithm overrides the configured checksum algorithm.
	Algorithm string `json:"algorithm,omitempty"`
	// StripComponents overrides the configured strip level when set.
	StripComponents *int `json:"strip_components,omitempty"`
}

// Report is the outcome of an audit.
type Report struct {
	*reconcile.Result
	Coverage *coverage.Report `json:"coverage,omitempty"`
}

// Service runs audits.
type Service struct {
	opener   *archive.Opener
	opts     reconcile.Options
	maxStrip int
	syntax   match.Syntax
	logger   *zap.Logger
}

// NewService creates an audit service.
func NewService(opener *archive.Opener, opts reconcile.Options, maxStrip int, syntax match.Syntax, logger *zap.Logger) *Service {
	return &Service{
		opener:   opener,
		opts:     opts,
		maxStrip: maxStrip,
		syntax:   syntax,
		logger:   logger,
	}
}

// Audit reports coverage and then verifies every archived file. Coverage is
// best effort: it is skipped for standard input and a failure is only logged.
func (s *Service) Audit(ctx context.Context, req Request, l *zap.Logger) (*Report, error) {
	m, opts, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	var cov *coverage.Report
	if archive.IsStdin(req.Archive) {
		l.Warn("Coverage skipped, standard input can only be read once")
	} else {
		cov, err = coverage.NewReporter(s.opener, s.maxStrip, l).Report(ctx, req.Dir, req.Archive, m)
		if err != nil {
			// Coverage is advisory; the verification pass reports real failures.
			l.Warn("Coverage report unavailable", zap.Error(err))
		}
	}

	res, err := reconcile.NewEngine(s.opener, m, l, opts).Run(ctx, req.Archive, req.Dir)
	if err != nil {
		return nil, err
	}
	return &Report{Result: res, Coverage: cov}, nil
}

// Coverage reports on-disk files absent from the archive.
func (s *Service) Coverage(ctx context.Context, req Request, l *zap.Logger) (*coverage.Report, error) {
	m, _, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	return coverage.NewReporter(s.opener, s.maxStrip, l).Report(ctx, req.Dir, req.Archive, m)
}

func (s *Service) prepare(req Request) (*match.Matcher, reconcile.Options, error) {
	if req.Archive == "" {
		return nil, reconcile.Options{}, fmt.Errorf("%w: missing archive", reconcile.ErrInvalidInput)
	}
	m, err := match.Compile(match.Rule{Wildcard: req.Exclude, Regex: req.ExcludeRegex, Syntax: s.syntax})
	if err != nil {
		return nil, reconcile.Options{}, err
	}

	opts := s.opts
	if req.Algorithm != "" {
		alg, err := checksum.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return nil, reconcile.Options{}, fmt.Errorf("%w: %v", reconcile.ErrInvalidInput, err)
		}
		opts.Algorithm = alg
	}
	if req.StripComponents != nil {
		opts.StripComponents = *req.StripComponents
	}
	return m, opts, nil
}

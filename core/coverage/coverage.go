package coverage

import (
	"context"
	"fmt"
	"strings"

	"tarcheck/core/archive"
	"tarcheck/core/fsscan"
	"tarcheck/core/match"

	"go.uber.org/zap"
)

// DefaultMaxStrip is the highest strip level tried when none is configured.
const DefaultMaxStrip = 1

// Status summarises a coverage report.
type Status string

const (
	StatusFullyCovered Status = "fully covered"
	StatusPartial      Status = "partial"
	StatusAllMissing   Status = "all missing"
)

// Report is the outcome of a coverage comparison.
type Report struct {
	Status Status `json:"status"`
	// StripLevel is the number of leading components removed from archive
	// paths for the comparison that produced this report.
	StripLevel int `json:"strip_level"`
	// Missing lists on-disk files absent from the archive, in scan order.
	Missing []string `json:"missing"`
	// FilesOnDisk counts the non-excluded regular files below the root.
	FilesOnDisk int `json:"files_on_disk"`
}

// String renders the human-readable summary.
func (r *Report) String() string {
	var b strings.Builder
	switch r.Status {
	case StatusFullyCovered:
		fmt.Fprintf(&b, "All %d files in the directory are in the archive (strip level %d)\n", r.FilesOnDisk, r.StripLevel)
		return b.String()
	case StatusPartial:
		fmt.Fprintf(&b, "%d of %d files in the directory are not in the archive (strip level %d):\n", len(r.Missing), r.FilesOnDisk, r.StripLevel)
	default:
		fmt.Fprintf(&b, "None of the %d files in the directory are in the archive (strip level %d):\n", r.FilesOnDisk, r.StripLevel)
	}
	for _, p := range r.Missing {
		fmt.Fprintf(&b, "  %s\n", p)
	}
	return b.String()
}

// Reporter builds coverage reports.
type Reporter struct {
	opener   *archive.Opener
	maxStrip int
	logger   *zap.Logger
}

// NewReporter creates a reporter trying strip levels 0 through maxStrip. A
// negative maxStrip selects DefaultMaxStrip.
func NewReporter(opener *archive.Opener, maxStrip int, logger *zap.Logger) *Reporter {
	if maxStrip < 0 {
		maxStrip = DefaultMaxStrip
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{opener: opener, maxStrip: maxStrip, logger: logger}
}

// Report compares the files below dir with the members of the archive at
// location. Paths excluded by matcher are ignored on both sides.
func (r *Reporter) Report(ctx context.Context, dir, location string, matcher *match.Matcher) (*Report, error) {
	entries, err := fsscan.Scan(dir)
	if err != nil {
		return nil, err
	}
	onDisk := matcher.Filter(fsscan.Files(entries))

	listed, err := archive.List(ctx, r.opener, location)
	if err != nil {
		return nil, err
	}

	return r.compare(onDisk, listed, matcher), nil
}

func (r *Reporter) compare(onDisk, listed []string, matcher *match.Matcher) *Report {
	for n := 0; n <= r.maxStrip; n++ {
		inArchive := make(map[string]struct{}, len(listed))
		for _, p := range matcher.Filter(archive.StripAll(listed, n)) {
			inArchive[p] = struct{}{}
		}
		missing := difference(onDisk, inArchive)
		r.logger.Debug("Coverage compared",
			zap.Int("strip_level", n),
			zap.Int("files_on_disk", len(onDisk)),
			zap.Int("missing", len(missing)))

		if len(missing) == 0 {
			return r.done(&Report{Status: StatusFullyCovered, StripLevel: n, Missing: []string{}, FilesOnDisk: len(onDisk)})
		}
		if len(missing) < len(onDisk) {
			return r.done(&Report{Status: StatusPartial, StripLevel: n, Missing: missing, FilesOnDisk: len(onDisk)})
		}
	}

	all := append([]string(nil), onDisk...)
	return r.done(&Report{Status: StatusAllMissing, StripLevel: 0, Missing: all, FilesOnDisk: len(onDisk)})
}

func (r *Reporter) done(rep *Report) *Report {
	r.logger.Info("Coverage report",
		zap.String("status", string(rep.Status)),
		zap.Int("strip_level", rep.StripLevel),
		zap.Int("missing", len(rep.Missing)))
	return rep
}

func difference(files []string, set map[string]struct{}) []string {
	out := []string{}
	for _, f := range files {
		if _, ok := set[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

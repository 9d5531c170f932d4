package reconcile

import (
	"errors"
	"fmt"

	"tarcheck/core/archive"
	"tarcheck/core/checksum"
	"tarcheck/core/fsscan"
	"tarcheck/core/resolve"
)

var (
	// ErrInvalidInput is returned when the archive location is missing.
	ErrInvalidInput = archive.ErrInvalidInput
	// ErrNotADirectory is returned when the directory root is unusable.
	ErrNotADirectory = fsscan.ErrNotADirectory
	// ErrMissingFile is returned when a member has no on-disk counterpart.
	ErrMissingFile = resolve.ErrMissingFile
	// ErrPermissionDenied is returned when a counterpart cannot be read.
	ErrPermissionDenied = resolve.ErrPermissionDenied
	// ErrMismatches is returned by callers that treat differences as failure.
	ErrMismatches = errors.New("archive and directory differ")
)

// Mismatch records one file whose archived content differs from disk.
type Mismatch struct {
	// Path is the member path as stored in the archive.
	Path string `json:"path"`
	// Expected is the checksum of the file on disk.
	Expected string `json:"expected"`
	// Actual is the checksum of the archived content.
	Actual string `json:"actual"`
}

// String renders the mismatch as "<path> <expected> != <actual>".
func (m Mismatch) String() string {
	return fmt.Sprintf("%s %s != %s", m.Path, m.Expected, m.Actual)
}

// Skipped counts members that were not checksummed.
type Skipped struct {
	Directories int `json:"directories"`
	Symlinks    int `json:"symlinks"`
	Other       int `json:"other"`
	Excluded    int `json:"excluded"`
}

// Result is the outcome of one verification pass.
type Result struct {
	// TotalFiles counts regular-file members that were checked.
	TotalFiles int `json:"total_files"`
	// Errors lists mismatches in archive order.
	Errors []Mismatch `json:"errors"`
	// Skipped counts members that were not checked.
	Skipped Skipped `json:"skipped"`
	// Algorithm is the checksum algorithm used.
	Algorithm checksum.Algorithm `json:"algorithm"`
	// Compression is the detected archive compression.
	Compression archive.Compression `json:"compression"`
}

// OK reports whether every checked file matched.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// State is a step in the lifecycle of one archive member.
type State string

const (
	StateListed          State = "listed"
	StateClassified      State = "classified"
	StateSkippedNonFile  State = "skipped-non-file"
	StateSkippedSymlink  State = "skipped-symlink"
	StateSkippedExcluded State = "skipped-excluded"
	StateResolved        State = "resolved"
	StateChecksummed     State = "checksummed"
	StateMatched         State = "matched"
	StateMismatched      State = "mismatched"
)

// Options tunes an Engine.
type Options struct {
	Algorithm        checksum.Algorithm
	FileBlockSize    int
	ArchiveBlockSize int
	// StripComponents < 0 resolves each member with the default chain.
	StripComponents int
}

// DefaultOptions returns md5 with the reference block sizes and per-member
// path resolution.
func DefaultOptions() Options {
	return Options{
		Algorithm:        checksum.MD5,
		FileBlockSize:    checksum.FileBlockSize,
		ArchiveBlockSize: checksum.ArchiveBlockSize,
		StripComponents:  -1,
	}
}

// OptionsFromConfig validates cfg and converts it to Options.
func OptionsFromConfig(cfg Config) (Options, error) {
	alg, err := checksum.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return Options{}, err
	}
	opts := DefaultOptions()
	opts.Algorithm = alg
	if cfg.FileBlockSize > 0 {
		opts.FileBlockSize = cfg.FileBlockSize
	}
	if cfg.ArchiveBlockSize > 0 {
		opts.ArchiveBlockSize = cfg.ArchiveBlockSize
	}
	opts.StripComponents = cfg.StripComponents
	return opts, nil
}

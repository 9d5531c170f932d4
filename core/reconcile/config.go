package reconcile

// Config holds configuration for verification runs.
type Config struct {
	// Algorithm is the checksum algorithm (md5, sha256, sha384, sha512).
	Algorithm string `mapstructure:"algorithm" default:"md5"`
	// FileBlockSize is the read size for files on disk, in bytes.
	FileBlockSize int `mapstructure:"file_block_size" default:"1048576"`
	// ArchiveBlockSize is the read size for archive member content, in bytes.
	ArchiveBlockSize int `mapstructure:"archive_block_size" default:"102400"`
	// StripComponents fixes how many leading components to drop from member
	// paths. Negative means detect per member.
	StripComponents int `mapstructure:"strip_components" default:"-1"`
	// CoverageMaxStrip is the highest strip level tried by coverage reports.
	CoverageMaxStrip int `mapstructure:"coverage_max_strip" default:"1"`
	// WildcardSyntax selects exclusion wildcard semantics (shell or path).
	WildcardSyntax string `mapstructure:"wildcard_syntax" default:"shell"`
}

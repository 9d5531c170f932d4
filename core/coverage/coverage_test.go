package coverage_test

import (
	"context"
	"path/filepath"
	"testing"

	"tarcheck/core/archive"
	"tarcheck/core/archive/archivetest"
	"tarcheck/core/coverage"
	"tarcheck/core/fsscan"
	"tarcheck/core/match"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArchive(t *testing.T, names ...string) string {
	t.Helper()
	members := make([]archivetest.Member, 0, len(names))
	for _, n := range names {
		members = append(members, archivetest.File(n, n))
	}
	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	archivetest.WriteFile(t, path, members, archivetest.Gzip)
	return path
}

func writeDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	files := make(map[string]string, len(names))
	for _, n := range names {
		files[n] = n
	}
	archivetest.WriteTree(t, dir, files)
	return dir
}

func report(t *testing.T, maxStrip int, dir, location string, rule match.Rule) *coverage.Report {
	t.Helper()
	m, err := match.Compile(rule)
	require.NoError(t, err)
	rep, err := coverage.NewReporter(archive.NewOpener(nil), maxStrip, nil).Report(context.Background(), dir, location, m)
	require.NoError(t, err)
	return rep
}

func TestReporter_PartialAtLevelZero(t *testing.T) {
	dir := writeDir(t, "1", "2", "3", "4", "5")
	tar := writeArchive(t, "1", "2", "3")

	rep := report(t, coverage.DefaultMaxStrip, dir, tar, match.Rule{})
	assert.Equal(t, coverage.StatusPartial, rep.Status)
	assert.Equal(t, 0, rep.StripLevel)
	assert.Equal(t, []string{"4", "5"}, rep.Missing)
	assert.Equal(t, 5, rep.FilesOnDisk)
}

func TestReporter_FullyCoveredAfterStrip(t *testing.T) {
	dir := writeDir(t, "a.txt", "sub/b.txt")
	tar := writeArchive(t, "data/a.txt", "data/sub/b.txt")

	rep := report(t, coverage.DefaultMaxStrip, dir, tar, match.Rule{})
	assert.Equal(t, coverage.StatusFullyCovered, rep.Status)
	assert.Equal(t, 1, rep.StripLevel)
	assert.Empty(t, rep.Missing)
}

func TestReporter_BoundLimitsSearch(t *testing.T) {
	dir := writeDir(t, "a.txt")
	tar := writeArchive(t, "backup/data/a.txt")

	rep := report(t, coverage.DefaultMaxStrip, dir, tar, match.Rule{})
	assert.Equal(t, coverage.StatusAllMissing, rep.Status)
	assert.Equal(t, 0, rep.StripLevel)
	assert.Equal(t, []string{"a.txt"}, rep.Missing)

	rep = report(t, 2, dir, tar, match.Rule{})
	assert.Equal(t, coverage.StatusFullyCovered, rep.Status)
	assert.Equal(t, 2, rep.StripLevel)
}

func TestReporter_AllMissing(t *testing.T) {
	dir := writeDir(t, "1", "2")
	tar := writeArchive(t, "x", "y")

	rep := report(t, coverage.DefaultMaxStrip, dir, tar, match.Rule{})
	assert.Equal(t, coverage.StatusAllMissing, rep.Status)
	assert.Equal(t, 0, rep.StripLevel)
	assert.Equal(t, []string{"1", "2"}, rep.Missing)
}

func TestReporter_ExcludedNeverMissing(t *testing.T) {
	dir := writeDir(t, "1", "2", "3", "4.log", "5.log")
	tar := writeArchive(t, "1", "2", "3")

	rep := report(t, coverage.DefaultMaxStrip, dir, tar, match.Rule{Wildcard: "*.log"})
	assert.Equal(t, coverage.StatusFullyCovered, rep.Status)
	assert.Equal(t, 3, rep.FilesOnDisk)

	rep = report(t, coverage.DefaultMaxStrip, dir, tar, match.Rule{Regex: `4`})
	assert.Equal(t, coverage.StatusPartial, rep.Status)
	assert.Equal(t, []string{"5.log"}, rep.Missing)
}

func TestReporter_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	tar := writeArchive(t, "1")

	rep := report(t, coverage.DefaultMaxStrip, dir, tar, match.Rule{})
	assert.Equal(t, coverage.StatusFullyCovered, rep.Status)
	assert.Equal(t, 0, rep.FilesOnDisk)
}

func TestReporter_Errors(t *testing.T) {
	tar := writeArchive(t, "1")
	r := coverage.NewReporter(archive.NewOpener(nil), -1, nil)

	_, err := r.Report(context.Background(), tar, tar, nil)
	assert.ErrorIs(t, err, fsscan.ErrNotADirectory)

	_, err = r.Report(context.Background(), t.TempDir(), "", nil)
	assert.ErrorIs(t, err, archive.ErrInvalidInput)
}

func TestReport_String(t *testing.T) {
	tests := []struct {
		name   string
		report coverage.Report
	}{
		{"fully_covered", coverage.Report{Status: coverage.StatusFullyCovered, StripLevel: 1, Missing: []string{}, FilesOnDisk: 3}},
		{"partial", coverage.Report{Status: coverage.StatusPartial, StripLevel: 0, Missing: []string{"4", "5"}, FilesOnDisk: 5}},
		{"all_missing", coverage.Report{Status: coverage.StatusAllMissing, StripLevel: 0, Missing: []string{"1", "sub/2"}, FilesOnDisk: 2}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(tt.report.String()))
		})
	}
}

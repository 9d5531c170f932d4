package fsscan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotADirectory is returned when the scan root is missing or not a directory.
var ErrNotADirectory = errors.New("not a directory")

// Entry is one item found below the scan root.
type Entry struct {
	RelativePath string `json:"relative_path"`
	IsDir        bool   `json:"is_dir"`
}

// CheckDir returns ErrNotADirectory unless root exists and is a directory.
func CheckDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrNotADirectory, root)
		}
		return fmt.Errorf("%w: %v", ErrNotADirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}
	return nil
}

// Scan walks root and returns its directories and regular files.
// The root itself is not included. Order is lexical and stable for an
// unchanged tree.
func Scan(root string) ([]Entry, error) {
	if err := CheckDir(root); err != nil {
		return nil, err
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch {
		case d.IsDir():
			entries = append(entries, Entry{RelativePath: rel, IsDir: true})
		case d.Type().IsRegular():
			entries = append(entries, Entry{RelativePath: rel})
		case d.Type()&fs.ModeSymlink != 0:
			// Links to directories are not followed.
			info, statErr := os.Stat(p)
			if statErr == nil && info.Mode().IsRegular() {
				entries = append(entries, Entry{RelativePath: rel})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return entries, nil
}

// Files returns the relative paths of the non-directory entries.
func Files(entries []Entry) []string {
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, e.RelativePath)
		}
	}
	return files
}

// Dirs returns the relative paths of the directory entries.
func Dirs(entries []Entry) []string {
	var dirs []string
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, e.RelativePath)
		}
	}
	return dirs
}

package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tarcheck/core/archive"
)

var (
	// ErrMissingFile is returned when no strategy finds an on-disk counterpart.
	ErrMissingFile = errors.New("missing file")

	// ErrPermissionDenied is returned when a candidate exists but cannot be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoCandidate is returned by a Strategy to defer to the next one.
	ErrNoCandidate = errors.New("no candidate")
)

// Strategy proposes an on-disk path for an archive member.
type Strategy interface {
	// Name identifies the strategy in logs and results.
	Name() string
	// Resolve returns the candidate path, ErrNoCandidate to defer to the next
	// strategy, or any other error to abort resolution.
	Resolve(root, member string) (string, error)
}

// Resolution is the outcome of resolving one member.
type Resolution struct {
	Path     string
	Strategy string
}

// Resolver applies a strategy chain below one directory root.
type Resolver struct {
	root       string
	strategies []Strategy
}

// New creates a resolver for root. The root is made absolute so the parent
// candidate is always well defined. With no strategies the default chain is
// used.
func New(root string, strategies ...Strategy) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	if len(strategies) == 0 {
		strategies = Default()
	}
	return &Resolver{root: abs, strategies: strategies}, nil
}

// Default returns the directory-relative then parent-relative chain.
func Default() []Strategy {
	return []Strategy{DirectoryRelative{}, ParentRelative{}}
}

// ForStripLevel returns the chain for a strip level. A negative level selects
// the default chain.
func ForStripLevel(n int) []Strategy {
	if n < 0 {
		return Default()
	}
	return []Strategy{StripLevel{N: n}}
}

// Root returns the absolute directory root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve finds the on-disk file for an archive member path.
func (r *Resolver) Resolve(member string) (Resolution, error) {
	member = archive.Normalize(member)
	for _, s := range r.strategies {
		p, err := s.Resolve(r.root, member)
		if errors.Is(err, ErrNoCandidate) {
			continue
		}
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Path: p, Strategy: s.Name()}, nil
	}
	return Resolution{}, fmt.Errorf("%w: the directory %s does not contain %s", ErrMissingFile, r.root, member)
}

// DirectoryRelative resolves members against the root itself. Any existing
// non-directory path is accepted, but it must be readable.
type DirectoryRelative struct{}

func (DirectoryRelative) Name() string { return "directory" }

func (DirectoryRelative) Resolve(root, member string) (string, error) {
	if member == "" {
		return "", ErrNoCandidate
	}
	p := join(root, member)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", denied(p)
		}
		return "", ErrNoCandidate
	}
	if info.IsDir() {
		return "", ErrNoCandidate
	}
	return readable(p)
}

// ParentRelative resolves members against the parent of the root, for
// archives whose members carry the directory name as their first component.
// The candidate must be a readable regular file.
type ParentRelative struct{}

func (ParentRelative) Name() string { return "parent" }

func (ParentRelative) Resolve(root, member string) (string, error) {
	if member == "" {
		return "", ErrNoCandidate
	}
	return regularFile(join(filepath.Dir(root), member))
}

// StripLevel drops the first N components of the member before joining it to
// the root.
type StripLevel struct {
	N int
}

func (s StripLevel) Name() string { return fmt.Sprintf("strip-%d", s.N) }

func (s StripLevel) Resolve(root, member string) (string, error) {
	stripped, ok := archive.StripComponents(member, s.N)
	if !ok {
		return "", ErrNoCandidate
	}
	return regularFile(join(root, stripped))
}

func regularFile(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", denied(p)
		}
		return "", ErrNoCandidate
	}
	if !info.Mode().IsRegular() {
		return "", ErrNoCandidate
	}
	return readable(p)
}

// readable opens and closes p. EACCES is ErrPermissionDenied.
func readable(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", denied(p)
		}
		return "", ErrNoCandidate
	}
	f.Close()
	return p, nil
}

func denied(p string) error {
	return fmt.Errorf("%w: this user can't access %s", ErrPermissionDenied, p)
}

func join(root, member string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(member, "/")))
}

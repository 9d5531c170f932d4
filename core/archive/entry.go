package archive

import (
	"archive/tar"
	"fmt"
	"io"
)

// Kind classifies an archive entry.
type Kind int

const (
	KindOther Kind = iota
	KindRegular
	KindDirectory
	KindSymlink
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "file"
	case KindDirectory:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one record of an archive.
type Entry struct {
	// Path is the normalized, slash-separated member path.
	Path string `json:"path"`
	// Name is the member path exactly as stored in the archive.
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Size     int64  `json:"size"`
	Linkname string `json:"linkname,omitempty"`

	content io.Reader
}

// Open returns the content of a regular-file entry. The reader is valid only
// until the archive advances to the next entry.
func (e *Entry) Open() (io.Reader, error) {
	if e.Kind != KindRegular || e.content == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, e.Path)
	}
	return e.content, nil
}

func kindOf(typeflag byte) Kind {
	switch typeflag {
	case tar.TypeReg, tar.TypeCont, tar.TypeGNUSparse:
		return KindRegular
	case tar.TypeDir:
		return KindDirectory
	case tar.TypeSymlink:
		return KindSymlink
	default:
		return KindOther
	}
}

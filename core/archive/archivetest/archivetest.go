// Package archivetest builds tar archives for tests.
package archivetest

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Member describes one archive entry. Type defaults to a regular file, or to
// a directory when Name ends in "/".
type Member struct {
	Name     string
	Body     string
	Type     byte
	Linkname string
	Mode     int64
}

// Dir is shorthand for a directory member.
func Dir(name string) Member {
	return Member{Name: name, Type: tar.TypeDir}
}

// File is shorthand for a regular file member.
func File(name, body string) Member {
	return Member{Name: name, Body: body, Type: tar.TypeReg}
}

// Symlink is shorthand for a symbolic link member.
func Symlink(name, target string) Member {
	return Member{Name: name, Type: tar.TypeSymlink, Linkname: target}
}

// Compression names the outer layer used by Build.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	Xz   Compression = "xz"
)

// Build returns the archive bytes for members.
func Build(t testing.TB, members []Member, c Compression) []byte {
	t.Helper()

	var out bytes.Buffer
	w, closeOuter := wrap(t, &out, c)

	tw := tar.NewWriter(w)
	for _, m := range members {
		hdr := &tar.Header{
			Name:     m.Name,
			Typeflag: m.Type,
			Linkname: m.Linkname,
			Mode:     m.Mode,
		}
		if hdr.Typeflag == 0 {
			hdr.Typeflag = tar.TypeReg
			if len(m.Name) > 0 && m.Name[len(m.Name)-1] == '/' {
				hdr.Typeflag = tar.TypeDir
			}
		}
		if hdr.Mode == 0 {
			hdr.Mode = 0o644
			if hdr.Typeflag == tar.TypeDir {
				hdr.Mode = 0o755
			}
		}
		if hdr.Typeflag == tar.TypeReg {
			hdr.Size = int64(len(m.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", m.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := io.WriteString(tw, m.Body); err != nil {
				t.Fatalf("write body %s: %v", m.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	closeOuter()

	return out.Bytes()
}

// WriteFile builds the archive and stores it at path.
func WriteFile(t testing.TB, path string, members []Member, c Compression) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, Build(t, members, c), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
}

// WriteTree creates files below root. Keys are slash-separated relative paths.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func wrap(t testing.TB, out *bytes.Buffer, c Compression) (io.Writer, func()) {
	switch c {
	case Gzip:
		gw := gzip.NewWriter(out)
		return gw, func() {
			if err := gw.Close(); err != nil {
				t.Fatalf("close gzip: %v", err)
			}
		}
	case Zstd:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			t.Fatalf("zstd writer: %v", err)
		}
		return zw, func() {
			if err := zw.Close(); err != nil {
				t.Fatalf("close zstd: %v", err)
			}
		}
	case Xz:
		xw, err := xz.NewWriter(out)
		if err != nil {
			t.Fatalf("xz writer: %v", err)
		}
		return xw, func() {
			if err := xw.Close(); err != nil {
				t.Fatalf("close xz: %v", err)
			}
		}
	default:
		return out, func() {}
	}
}

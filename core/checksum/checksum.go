package checksum

import (
	"crypto/md5"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
)

const (
	// FileBlockSize is the read granularity for files opened from disk (1 MiB).
	FileBlockSize = 1 << 20

	// ArchiveBlockSize is the read granularity for archive member content (100 KiB).
	ArchiveBlockSize = 100 * 1024
)

// ErrInvalidInput is returned when there is no stream to checksum.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownAlgorithm is returned for an algorithm name that is not supported.
var ErrUnknownAlgorithm = errors.New("unknown checksum algorithm")

// Algorithm names a content hash.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = Algorithm(digest.SHA256)
	SHA384 Algorithm = Algorithm(digest.SHA384)
	SHA512 Algorithm = Algorithm(digest.SHA512)
)

// ParseAlgorithm maps a case-insensitive name to an Algorithm.
// An empty name selects MD5.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if alg == "" {
		return MD5, nil
	}
	if !alg.Available() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}

// Available reports whether the algorithm can be used.
func (a Algorithm) Available() bool {
	if a == MD5 {
		return true
	}
	return digest.Algorithm(a).Available()
}

// New returns a fresh hash for the algorithm.
func (a Algorithm) New() (hash.Hash, error) {
	if a == MD5 || a == "" {
		return md5.New(), nil
	}
	d := digest.Algorithm(a)
	if !d.Available() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
	return d.Hash(), nil
}

// Checksum is a lowercase hexadecimal digest.
type Checksum struct {
	Algorithm Algorithm
	Hex       string
}

// String returns the hexadecimal digest.
func (c Checksum) String() string {
	return c.Hex
}

// Equal compares two checksums by their hexadecimal strings.
func (c Checksum) Equal(other Checksum) bool {
	return c.Hex == other.Hex
}

// Digest returns the checksum in "algorithm:hex" form.
func (c Checksum) Digest() digest.Digest {
	alg := c.Algorithm
	if alg == "" {
		alg = MD5
	}
	return digest.NewDigestFromEncoded(digest.Algorithm(alg), c.Hex)
}

// Sum reads r to exhaustion in blocks of blockSize bytes and returns its digest.
// The stream is fully consumed; callers must not reuse it.
func Sum(r io.Reader, alg Algorithm, blockSize int) (Checksum, error) {
	if r == nil {
		return Checksum{}, fmt.Errorf("%w: missing stream to checksum", ErrInvalidInput)
	}
	if blockSize <= 0 {
		blockSize = FileBlockSize
	}

	h, err := alg.New()
	if err != nil {
		return Checksum{}, err
	}

	buf := make([]byte, blockSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n]) // hash writes never fail
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Checksum{}, fmt.Errorf("checksum read: %w", err)
		}
	}

	if alg == "" {
		alg = MD5
	}
	return Checksum{Algorithm: alg, Hex: fmt.Sprintf("%x", h.Sum(nil))}, nil
}

// SumFile opens the file at path and checksums it with FileBlockSize reads.
func SumFile(path string, alg Algorithm) (Checksum, error) {
	return SumFileBlocks(path, alg, FileBlockSize)
}

// SumFileBlocks is SumFile with an explicit block size.
func SumFileBlocks(path string, alg Algorithm, blockSize int) (Checksum, error) {
	if path == "" {
		return Checksum{}, fmt.Errorf("%w: missing file path", ErrInvalidInput)
	}
	f, err := os.Open(path)
	if err != nil {
		return Checksum{}, err
	}
	defer f.Close()

	return Sum(f, alg, blockSize)
}

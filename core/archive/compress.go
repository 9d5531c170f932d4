package archive

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies the outer compression layer of an archive stream.
type Compression string

const (
	CompressionNone  Compression = "none"
	CompressionGzip  Compression = "gzip"
	CompressionBzip2 Compression = "bzip2"
	CompressionXz    Compression = "xz"
	CompressionZstd  Compression = "zstd"
)

var magics = []struct {
	prefix      []byte
	compression Compression
}{
	{[]byte{0x1f, 0x8b}, CompressionGzip},
	{[]byte("BZh"), CompressionBzip2},
	{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, CompressionXz},
	{[]byte{0x28, 0xb5, 0x2f, 0xfd}, CompressionZstd},
}

// Detect reports the compression of the stream buffered in br without
// consuming any of it.
func Detect(br *bufio.Reader) Compression {
	head, _ := br.Peek(6)
	for _, m := range magics {
		if bytes.HasPrefix(head, m.prefix) {
			return m.compression
		}
	}
	return CompressionNone
}

// decompress wraps r in the decoder for its detected compression. The returned
// release function frees decoder resources and must always be called.
func decompress(r io.Reader) (io.Reader, Compression, func(), error) {
	br := bufio.NewReader(r)
	c := Detect(br)

	switch c {
	case CompressionGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, func() {}, fmt.Errorf("open gzip stream: %w", err)
		}
		return gz, c, func() { _ = gz.Close() }, nil
	case CompressionBzip2:
		return bzip2.NewReader(br), c, func() {}, nil
	case CompressionXz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, c, func() {}, fmt.Errorf("open xz stream: %w", err)
		}
		return xr, c, func() {}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
		if err != nil {
			return nil, c, func() {}, fmt.Errorf("open zstd stream: %w", err)
		}
		return dec, c, dec.Close, nil
	default:
		return br, CompressionNone, func() {}, nil
	}
}

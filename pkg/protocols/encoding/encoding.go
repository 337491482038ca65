// Package encoding provides transparent (de)compression for protocol database files
package encoding

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type denotes the type of encoding applied to a protocols file
type Type int

// Enumeration of supported encodings
const (
	TypeNone Type = iota // plain text (default, hence allocated the value 0)
	TypeLZ4              // LZ4 frame format
	TypeZSTD             // ZStandard frame format

	MaxType = TypeZSTD
)

var typeNames = [...]string{
	TypeNone: "none",
	TypeLZ4:  "lz4",
	TypeZSTD: "zstd",
}

// String returns a human-readable name of the encoding
func (t Type) String() string {
	if t < 0 || t > MaxType {
		return "unknown"
	}
	return typeNames[t]
}

// Extension returns the file extension commonly used for the encoding (empty for plain text)
func (t Type) Extension() string {
	switch t {
	case TypeLZ4:
		return ".lz4"
	case TypeZSTD:
		return ".zst"
	}
	return ""
}

// ParseType parses an encoding name (case-insensitive). An empty string denotes plain text
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "null", "plain":
		return TypeNone, nil
	case "lz4":
		return TypeLZ4, nil
	case "zstd", "zst":
		return TypeZSTD, nil
	}
	return TypeNone, fmt.Errorf("unsupported encoding: %q", s)
}

// TypeFromPath derives the encoding from the file extension of path
func TypeFromPath(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return TypeLZ4
	case ".zst", ".zstd":
		return TypeZSTD
	}
	return TypeNone
}

// NewReader wraps r so that reads return decoded data. Closing the returned reader
// releases decoder resources but does not close r
func NewReader(t Type, r io.Reader) (io.ReadCloser, error) {
	switch t {
	case TypeNone:
		return io.NopCloser(r), nil
	case TypeLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case TypeZSTD:
		dec, err := zstd.NewReader(r,
			zstd.WithDecoderConcurrency(1),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd: decompression context init failed: %w", err)
		}
		return dec.IOReadCloser(), nil
	}
	return nil, fmt.Errorf("unsupported encoding: %v", t)
}

// NewWriter wraps w so that written data is encoded. The returned writer must be closed
// to flush all pending data. Closing it does not close w
func NewWriter(t Type, w io.Writer) (io.WriteCloser, error) {
	switch t {
	case TypeNone:
		return nopWriteCloser{w}, nil
	case TypeLZ4:
		return lz4.NewWriter(w), nil
	case TypeZSTD:
		enc, err := zstd.NewWriter(w,
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd: compression context init failed: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported encoding: %v", t)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

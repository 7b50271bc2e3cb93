package envelope

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// CompressionKind selects one of the built-in Compressor implementations,
// matching the compression configuration option of spec §6.
type CompressionKind int

const (
	CompressionOff CompressionKind = iota
	CompressionDeflate
)

// NewCompressor builds the Compressor named by kind.
func NewCompressor(kind CompressionKind) (Compressor, error) {
	switch kind {
	case CompressionOff:
		return NoopCompressor{}, nil
	case CompressionDeflate:
		return DeflateCompressor{}, nil
	default:
		return nil, fmt.Errorf("envelope: unknown compression kind %d", kind)
	}
}

// NoopCompressor passes data through unchanged.
type NoopCompressor struct{}

func (NoopCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoopCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DeflateCompressor wraps github.com/klauspost/compress/flate, adopted
// from the gosuda-portal and shurlinet-shurli siblings, both of which pull
// in klauspost/compress for their own wire codecs.
type DeflateCompressor struct{}

func (DeflateCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (DeflateCompressor) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}

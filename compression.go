package nbt

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/scigolib/nbt/internal/utils"
)

// CompressionMode selects the envelope applied around a binary NBT payload
// before it reaches disk.
type CompressionMode int

const (
	// CompressionNone applies no compression.
	CompressionNone CompressionMode = iota
	// CompressionGzip wraps the payload in a gzip stream (magic 1F 8B).
	CompressionGzip
	// CompressionZlib wraps the payload in a zlib stream (magic 78 9C).
	CompressionZlib
)

func (m CompressionMode) String() string {
	switch m {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	default:
		return fmt.Sprintf("CompressionMode(%d)", int(m))
	}
}

// sniffCompression inspects the first two bytes of data to identify gzip's
// or zlib's magic header, falling back to CompressionNone for anything
// else (including input shorter than two bytes).
func sniffCompression(data []byte) CompressionMode {
	if len(data) < 2 {
		return CompressionNone
	}
	switch {
	case data[0] == 0x1F && data[1] == 0x8B:
		return CompressionGzip
	case data[0] == 0x78 && data[1] == 0x9C:
		return CompressionZlib
	default:
		return CompressionNone
	}
}

// decompress reverses the envelope identified by mode and returns the raw
// payload bytes. It does no sniffing of its own: CompressionNone returns
// data unchanged, so callers that want detection run sniffCompression first.
func decompress(data []byte, mode CompressionMode) ([]byte, error) {
	switch mode {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, utils.NewFileError("gzip decompress", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, utils.NewFileError("gzip decompress", err)
		}
		return out, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, utils.NewFileError("zlib decompress", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, utils.NewFileError("zlib decompress", err)
		}
		return out, nil
	case CompressionNone:
		return data, nil
	default:
		return nil, utils.NewFileError("decompress", fmt.Errorf("unknown compression mode %v", mode))
	}
}

// compress applies the envelope named by mode to data.
func compress(data []byte, mode CompressionMode) ([]byte, error) {
	switch mode {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, utils.NewFileError("gzip compress", err)
		}
		if err := zw.Close(); err != nil {
			return nil, utils.NewFileError("gzip compress", err)
		}
		return buf.Bytes(), nil
	case CompressionZlib:
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, utils.NewFileError("zlib compress", err)
		}
		if err := zw.Close(); err != nil {
			return nil, utils.NewFileError("zlib compress", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, utils.NewFileError("compress", fmt.Errorf("unknown compression mode %v", mode))
	}
}

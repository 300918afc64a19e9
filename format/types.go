package format

import (
	"path/filepath"
	"strings"
)

// CompressionType identifies the compression applied to a JSONL stream.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents plain, uncompressed JSONL.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard stream.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame stream.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a gzip member stream.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// Extension returns the conventional file extension for the compression type,
// including the leading dot. CompressionNone returns an empty string.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	case CompressionGzip:
		return ".gz"
	default:
		return ""
	}
}

var extCompression = map[string]CompressionType{
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".s2":   CompressionS2,
	".sz":   CompressionS2,
	".lz4":  CompressionLZ4,
	".gz":   CompressionGzip,
}

// DetectCompression returns the compression type implied by the extension of name.
//
// Matching is case-insensitive. Names without a recognized extension
// (for example "events.jsonl") are treated as uncompressed.
func DetectCompression(name string) CompressionType {
	ext := strings.ToLower(filepath.Ext(name))
	if c, ok := extCompression[ext]; ok {
		return c
	}

	return CompressionNone
}

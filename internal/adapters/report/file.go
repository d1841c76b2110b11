package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix selects zstd compression for output files
const CompressedSuffix = ".zst"

type zstdFile struct {
	enc  *zstd.Encoder
	file *os.File
}

func (z *zstdFile) Write(p []byte) (int, error) { return z.enc.Write(p) }

func (z *zstdFile) Close() error {
	encErr := z.enc.Close()
	fileErr := z.file.Close()
	if encErr != nil {
		return encErr
	}
	return fileErr
}

// Create opens path for writing. Paths ending in .zst are zstd-compressed.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if !strings.HasSuffix(path, CompressedSuffix) {
		return f, nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start zstd encoder: %w", err)
	}
	return &zstdFile{enc: enc, file: f}, nil
}

type zstdReader struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z *zstdReader) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdReader) Close() error {
	z.dec.Close()
	return z.file.Close()
}

// Open opens a report written by Create, decompressing .zst files
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, CompressedSuffix) {
		return f, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start zstd decoder: %w", err)
	}
	return &zstdReader{dec: dec, file: f}, nil
}

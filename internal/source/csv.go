// Package source provides the batch input adapters for the pricing
// pipeline.
package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
)

// FileSource reads transaction rows from a delimited text file, skipping
// the header line. Files ending in .gz are decompressed transparently.
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource over the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Rows reads the whole file and returns every line after the header. Row
// content is returned raw; parsing and validation happen downstream.
func (s *FileSource) Rows(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(s.path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", s.path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	var rows []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if first {
			first = false
			continue
		}
		rows = append(rows, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan %s", s.path)
	}

	return rows, nil
}

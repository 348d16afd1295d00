// Package catalog loads the initial product catalogue from gzipped JSON-lines
// files, either from S3 or the local file system, and seeds an empty store.
package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ecommerce-ms/internal/model"
)

// Loader defines the interface for loading catalogue files.
type Loader interface {
	// Load reads a gzipped JSON-lines file; each line is one product.
	Load(ctx context.Context, path string) ([]model.ProductRequest, error)
}

// maxLineSize bounds a single catalogue line.
const maxLineSize = 1024 * 1024

// decode reads gzipped JSON lines from r. Blank lines are skipped.
// A malformed line fails the whole file with its line number.
func decode(ctx context.Context, r io.Reader) ([]model.ProductRequest, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var items []model.ProductRequest
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		// Check context cancellation periodically
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item model.ProductRequest
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("invalid catalogue line %d: %w", lineNo, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalogue: %w", err)
	}

	return items, nil
}

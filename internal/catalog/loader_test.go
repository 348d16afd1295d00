package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gzipLines returns lines joined by newlines and gzipped.
func gzipLines(t *testing.T, lines []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	_, err := gzipWriter.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, gzipWriter.Close())

	return buf.Bytes()
}

// createTestCatalogFile creates a gzipped test catalogue file.
func createTestCatalogFile(t *testing.T, filename string, lines []string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, gzipLines(t, lines), 0o600))

	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestCatalogFile(t, "products.jsonl.gz", []string{
		`{"name":"Laptop","price":999.99,"stock":50}`,
		``,
		`   `,
		`{"name":"Mouse","price":"19.50","stock":0}`,
	})

	items, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Laptop", items[0].Name)
	assert.True(t, decimal.RequireFromString("999.99").Equal(items[0].Price))
	assert.Equal(t, 50, items[0].Stock)
	assert.Equal(t, "Mouse", items[1].Name)
	assert.True(t, decimal.RequireFromString("19.5").Equal(items[1].Price))
}

func TestFileLoader_Load_Errors(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		items, err := loader.Load(ctx, filepath.Join(t.TempDir(), "missing.gz"))
		require.Error(t, err)
		assert.Nil(t, items)
		assert.Contains(t, err.Error(), "failed to open catalogue file")
	})

	t.Run("not gzipped", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "plain.jsonl")
		require.NoError(t, os.WriteFile(filePath, []byte(`{"name":"x"}`), 0o600))

		items, err := loader.Load(ctx, filePath)
		require.Error(t, err)
		assert.Nil(t, items)
		assert.Contains(t, err.Error(), "gzip")
	})

	t.Run("malformed line", func(t *testing.T) {
		filePath := createTestCatalogFile(t, "bad.jsonl.gz", []string{
			`{"name":"Laptop","price":1,"stock":1}`,
			`{"name":`,
		})

		items, err := loader.Load(ctx, filePath)
		require.Error(t, err)
		assert.Nil(t, items)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestFileLoader_Load_EmptyFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := createTestCatalogFile(t, "empty.jsonl.gz", nil)

	items, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Empty(t, items)
}

//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

type catalogLine struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// Writes data/catalog/products.jsonl.gz, the file the API seeds from when
// CATALOG_SEED_ENABLED=true and the products table is empty.
// Usage: go run scripts/generate_sample_catalog.go
func main() {
	decimal.MarshalJSONWithoutQuotes = true

	dataDir := "data/catalog"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []catalogLine{
		{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 50},
		{Name: "Wireless Mouse", Price: decimal.RequireFromString("19.50"), Stock: 200},
		{Name: "Mechanical Keyboard", Price: decimal.RequireFromString("89.00"), Stock: 75},
		{Name: "27\" Monitor", Price: decimal.RequireFromString("249.90"), Stock: 30},
		{Name: "USB-C Hub", Price: decimal.RequireFromString("34.95"), Stock: 120},
		{Name: "Webcam", Price: decimal.RequireFromString("59.00"), Stock: 0},
	}

	filePath := filepath.Join(dataDir, "products.jsonl.gz")
	if err := writeCatalog(filePath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(products))
}

func writeCatalog(filePath string, products []catalogLine) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product: %w", err)
		}
	}

	return nil
}

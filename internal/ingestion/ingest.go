package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
)

// Ingest decodes and normalizes a document. Text shorter than
// MinUsableLength is rejected with *ExtractionEmptyError.
func Ingest(filename, mimeType string, data []byte) (string, *Metadata, error) {
	raw, err := Decode(filename, mimeType, data)
	if err != nil {
		return "", nil, err
	}

	normalized := Normalize(raw)
	if !IsUsable(normalized) {
		return "", nil, &ExtractionEmptyError{Source: filename, Length: len(normalized)}
	}

	return normalized, NewMetadata(normalized, filename, mimeType, len(data)), nil
}

// IngestFromFile reads a résumé file from disk and ingests it.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Ingest(filepath.Base(path), "", content)
}

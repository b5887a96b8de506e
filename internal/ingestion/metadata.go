package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one ingested résumé file.
type Metadata struct {
	Filename  string `json:"filename,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	Format    Format `json:"format,omitempty"`
	Bytes     int    `json:"bytes"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the normalized text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(normalized, filename, mimeType string, size int) *Metadata {
	format, _ := DetectFormat(filename, mimeType)
	return &Metadata{
		Filename:  filename,
		MimeType:  mimeType,
		Format:    format,
		Bytes:     size,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      HashText(normalized),
	}
}

// HashText computes the SHA256 hex digest used as a cache key.
func HashText(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

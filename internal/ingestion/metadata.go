package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes where an ingested document came from.
type Metadata struct {
	Source    string `json:"source,omitempty"`   // File path, when read from disk
	URL       string `json:"url,omitempty"`      // Page URL, when fetched
	Format    string `json:"format,omitempty"`   // txt, tex, pdf, docx or html
	Platform  string `json:"platform,omitempty"` // Detected job board
	Timestamp string `json:"timestamp"`          // RFC3339
	Hash      string `json:"hash"`               // SHA256 hex digest of the normalized text
	Words     int    `json:"words"`
}

// NewMetadata creates a Metadata stamped with the current time.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Words:     WordCount(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to indented JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateEntityID creates a readable unique entity id.
// Format: {kind}-{label}-{8charHexUUID}
//
// Example:
//   - Input: kind="ship", label="TRADER-1"
//   - Output: "ship-TRADER-1-a3f8e2b1"
//
// The UUID suffix keeps ids globally unique while the prefix stays legible
// in logs and ledger rows.
func GenerateEntityID(kind, label string) string {
	return kind + "-" + label + "-" + shortUUID()
}

// shortUUID creates an 8-character hex string from a UUID
func shortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

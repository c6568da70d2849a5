// Package schema implements the OIML schema registry, the restricted
// schema validator, and the content-addressed validator cache.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// ContentIDPrefixLen is the number of hex characters kept from a full
// content hash when building a short identifier.
const ContentIDPrefixLen = 16

// HashContent computes the SHA-256 hash of the given bytes as lowercase hex
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CanonicalJSON encodes a value as canonical JSON: object keys are emitted
// in sorted order so that structurally equal documents hash identically.
func CanonicalJSON(v any) ([]byte, error) {
	// encoding/json (and goccy's compatible implementation) sorts map keys
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical encode: %w", err)
	}
	return raw, nil
}

// ContentID derives a short, algorithm-tagged identifier from a value's
// canonical JSON form, e.g. "sha256:9f86d081884c7d65".
func ContentID(v any) (string, error) {
	raw, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	return "sha256:" + HashContent(raw)[:ContentIDPrefixLen], nil
}

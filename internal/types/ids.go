package types

import "github.com/google/uuid"

// NewNodeID generates a UUIDv7 identifier for layers, criteria, rule groups
// and statements.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewNodeID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewOntologyID generates a UUIDv7 record identifier.
// Time-ordered IDs keep sequential inserts clustered in B-tree pages.
func NewOntologyID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ParseOntologyID validates a record identifier.
// Rejects malformed UUIDs before they reach the store.
func ParseOntologyID(s string) (string, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return s, nil
}

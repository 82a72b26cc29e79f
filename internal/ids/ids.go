// Package ids generates the opaque unique identifiers used for every
// domain record.
package ids

import "github.com/google/uuid"

// New returns a fresh opaque identifier.
func New() string {
	return uuid.NewString()
}

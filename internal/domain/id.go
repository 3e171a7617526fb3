package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrBadID = errors.New("malformed identifier")

// NewID returns a fresh primary key in canonical form.
func NewID() string { return uuid.NewString() }

// ParseID converts a string reference into the native identifier type.
// Every join against a primary key goes through here first.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %v", ErrBadID, s, err)
	}
	return id, nil
}

// ParseIDs converts refs, returning the canonical keys and the refs that failed.
func ParseIDs(refs []string) (keys []string, bad []string) {
	seen := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		id, err := ParseID(r)
		if err != nil {
			bad = append(bad, r)
			continue
		}
		k := id.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys, bad
}

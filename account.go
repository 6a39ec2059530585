package payscope

import (
	"fmt"

	"github.com/google/uuid"
)

// AccountID is the stable, opaque identifier of a balance holder.
//
// It is a 128-bit UUID, never reused and never mutated.
type AccountID uuid.UUID

// NewAccountID returns a fresh random account identifier.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

// ParseAccountID parses the textual representation of an account identifier.
func ParseAccountID(s string) (AccountID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid account identifier %q: %w", s, err)
	}
	return AccountID(id), nil
}

// MustParseAccountID is like ParseAccountID but panics on error.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical lower-case hyphenated form.
func (id AccountID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the nil UUID.
func (id AccountID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// Compare orders identifiers by their canonical string form.
func (id AccountID) Compare(other AccountID) int {
	a, b := id.String(), other.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

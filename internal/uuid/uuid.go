// Package uuid wraps google/uuid so that IDs can be bound from
// gin path parameters and query strings.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

// ErrInvalid is returned for IDs that are not valid UUIDs.
var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// From converts a google/uuid UUID.
func From(u google_uuid.UUID) UUID {
	return UUID{u}
}

// Parse parses an ID, only the canonical 36 character form is accepted.
func Parse(s string) (UUID, error) {
	if len(s) != 36 {
		return Nil, ErrInvalid
	}

	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, ErrInvalid
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler so that
// UUID can be used in structs bound with ShouldBindUri and ShouldBindQuery.
func (u *UUID) UnmarshalParam(p string) error {
	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}

package common

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// UserID is the one identity-id representation shared by tokens, stored
// posts, like-sets and the client session. Compare with Equal.
type UserID uuid.UUID

// NilUserID is the zero value, never assigned to a stored identity.
var NilUserID = UserID(uuid.Nil)

// NewUserID returns a fresh random id.
func NewUserID() UserID {
	return UserID(uuid.New())
}

// ParseUserID parses the canonical textual form of an id.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilUserID, fmt.Errorf("parse user id %q: %w", s, err)
	}
	return UserID(u), nil
}

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

func (id UserID) IsZero() bool {
	return id == NilUserID
}

// Equal reports whether two ids denote the same identity.
func (id UserID) Equal(other UserID) bool {
	return id == other
}

func (id UserID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *UserID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

// Scan implements sql.Scanner.
func (id *UserID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

// Value implements driver.Valuer.
func (id UserID) Value() (driver.Value, error) {
	return id.String(), nil
}

// ContainsUserID reports whether set holds id.
func ContainsUserID(set []UserID, id UserID) bool {
	for _, v := range set {
		if v.Equal(id) {
			return true
		}
	}
	return false
}

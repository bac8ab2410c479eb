package userstore

import (
	"database/sql/driver"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is the store-assigned identifier of a record: a 12-byte ObjectID,
// written as 24 hex characters at the API boundary.
//
// ID encodes to a native ObjectID in BSON and to its hex text in SQL, so the
// same value addresses a record on either backend.
type ID primitive.ObjectID

// NilID is the zero identifier. No stored record carries it.
var NilID ID

// NewID generates a fresh identifier.
func NewID() ID {
	return ID(primitive.NewObjectID())
}

// ParseID parses the hex text form of an identifier.
// Text that is not exactly 24 hex characters fails with ErrInvalidIdentifier.
func ParseID(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return ID(oid), nil
}

// Hex returns the 24 character text form.
func (id ID) Hex() string {
	return primitive.ObjectID(id).Hex()
}

func (id ID) String() string { return id.Hex() }

// IsZero reports whether id is NilID. BSON omitempty relies on it.
func (id ID) IsZero() bool { return id == NilID }

// MarshalBSONValue implements bson.ValueMarshaler.
func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&oid); err != nil {
		return err
	}
	*id = ID(oid)
	return nil
}

// Value implements driver.Valuer.
func (id ID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan implements sql.Scanner.
func (id *ID) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("userstore: cannot scan %T into ID", src)
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

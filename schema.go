package userstore

import (
	"fmt"
	"reflect"
)

// Schema defines how to map a record type to a table or collection and back.
type Schema[T any] interface {
	// TableName is the default table or collection name.
	TableName() string

	// SelectColumns lists the stored fields, identifier first.
	SelectColumns() []string

	// InsertRow returns the stored fields and values of a record, identifier included.
	InsertRow(*T) ([]string, []any)

	// SetID stores the identifier assigned at insertion.
	SetID(m *T, id ID)
}

var schemas = make(map[reflect.Type]any)

func RegisterSchema[T any](schema Schema[T]) {
	var t T
	typ := reflect.TypeOf(t)
	schemas[typ] = schema
}

func LoadSchema[T any]() Schema[T] {
	var t T
	typ := reflect.TypeOf(t)
	if s, ok := schemas[typ]; ok {
		return s.(Schema[T])
	}
	panic(fmt.Sprintf("userstore: schema not registered for type %v", typ))
}

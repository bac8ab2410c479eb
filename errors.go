package userstore

import "errors"

var (
	// ErrInvalidIdentifier is returned when id text cannot be parsed into an ID.
	// It is checked before the store is contacted.
	ErrInvalidIdentifier = errors.New("userstore: invalid identifier")

	// ErrConnectionFailure is returned by Open when the store is unreachable
	// or rejects the credentials.
	ErrConnectionFailure = errors.New("userstore: connection failure")
)

package object

import "errors"

var (
	// ErrNotFound is returned when no stored object exists for a hash.
	ErrNotFound = errors.New("object not found")
	// ErrCorruptStorage is returned when stored bytes fail to decompress.
	ErrCorruptStorage = errors.New("corrupt object storage")
	// ErrMalformedObject is returned when the "type len\0" envelope is broken.
	ErrMalformedObject = errors.New("malformed object")
	ErrMalformedTree   = errors.New("malformed tree")
	ErrMalformedCommit = errors.New("malformed commit")
	// ErrSizeMismatch is returned when the declared payload length differs
	// from the actual payload length.
	ErrSizeMismatch      = errors.New("object size mismatch")
	ErrUnknownObjectType = errors.New("unknown object type")
	ErrInvalidHash       = errors.New("invalid hash")
	// ErrTypeMismatch is returned by the typed readers when the stored
	// object has a different type.
	ErrTypeMismatch = errors.New("object type mismatch")
)

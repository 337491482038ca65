package protocols

import "errors"

var (
	// ErrInvalidArgument denotes a lookup argument that cannot be handed to the protocol database
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported denotes an operation the protocol directory does not implement (e.g. enumeration on Windows)
	ErrUnsupported = errors.New("operation not supported by protocol directory")

	// ErrInvalidEntry denotes a serialized protocol entry that does not describe a valid record
	ErrInvalidEntry = errors.New("invalid protocol entry")
)

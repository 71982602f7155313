package schema

import "errors"

var (
	ErrTypeAlreadyExists = errors.New("type already exists")
	ErrUnknownType       = errors.New("unknown type")
	ErrUnknownProperty   = errors.New("unknown property")
	ErrInvalidFunction   = errors.New("invalid function definition")
	ErrInvalidDescriptor = errors.New("invalid schema descriptor")
)

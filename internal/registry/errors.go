package registry

import "errors"

var (
	// ErrIndexNotFound indicates the index document does not exist yet.
	ErrIndexNotFound = errors.New("index not found")
	// ErrInvalidIndex indicates the index document could not be decoded.
	ErrInvalidIndex = errors.New("invalid index")
)

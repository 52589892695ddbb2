package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the target struct.
	ErrParsingConfig = errors.New("failed to parse config from environment")
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("config target is nil")
)

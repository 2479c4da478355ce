package core

import "errors"

var (
	// ErrInvalidArgument reports a malformed emit call: an unknown level
	// or a negative depth. It is a programmer error.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownLevel reports a level value missing from the registry.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrInvalidConfiguration reports bad logger parameters or a log
	// file that could not be created. No usable logger exists after it.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

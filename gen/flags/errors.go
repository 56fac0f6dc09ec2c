package flags

import "errors"

var (
	// ErrExitStatus is returned by generated commands when the grammar
	// runner exited with a non-zero status. The error itself has already
	// been printed on the command's error stream.
	ErrExitStatus = errors.New("command exited with non-zero status")

	// ErrNoCommand is returned when the grammar describes no command.
	ErrNoCommand = errors.New("grammar has no command")
)

package cmdserve

import "errors"

var (
	// ErrAlreadyRunning is returned by Start when the server is not stopped.
	ErrAlreadyRunning = errors.New("cmdserve: server already running")

	// ErrNotRunning is returned by SetPriority when the server is stopped.
	ErrNotRunning = errors.New("cmdserve: server not running")

	// ErrNilDispatcher is returned by Start when no command registry is supplied.
	ErrNilDispatcher = errors.New("cmdserve: nil dispatcher")

	// ErrPlatformNotSupported is returned by SetPriority on platforms
	// without thread scheduling control (requires Linux/sched_setattr).
	ErrPlatformNotSupported = errors.New("cmdserve: platform not supported (requires Linux/sched_setattr)")
)

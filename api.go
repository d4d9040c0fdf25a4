// Package cmdserve implements a minimal command-oriented TCP service
// bound to the loopback interface. A client connects, sends one line
// of the form "command [argument]", receives one line of response and
// the connection is closed. The command vocabulary, the response text
// and the logging backend are all supplied by the caller; the package
// owns only the listener lifecycle and per-connection handling.
package cmdserve

import "time"

// Severity classifies an event reported through an EventFunc.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

// String returns the conventional upper-case label for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// EventFunc receives lifecycle and per-request diagnostics from the
// server. ok reports whether the event describes a successful outcome.
// The function is invoked synchronously from the accept loop and from
// concurrent connection handlers; a sink that needs to serialize its
// output must do so itself.
type EventFunc func(sev Severity, msg string, ok bool)

// Dispatcher maps command names to response text. Dispatch must not
// block indefinitely and must always return a response; an "unknown
// command" message is itself a valid response, not a failure.
// Commands exposes the recognized command names for external tooling.
type Dispatcher interface {
	Dispatch(command, argument string) string
	Commands() []string
}

// SchedClass selects the scheduling class applied to the accept-loop
// thread by Server.SetPriority. Values match the Linux policy numbers.
type SchedClass int

const (
	SchedOther SchedClass = 0 // level is a nice value (-20..19)
	SchedFIFO  SchedClass = 1 // level is a realtime priority (1..99)
	SchedRR    SchedClass = 2 // level is a realtime priority (1..99)
	SchedBatch SchedClass = 3 // level is a nice value
	SchedIdle  SchedClass = 5 // level is ignored
)

// String returns the kernel policy name for the class.
func (c SchedClass) String() string {
	switch c {
	case SchedOther:
		return "other"
	case SchedFIFO:
		return "fifo"
	case SchedRR:
		return "rr"
	case SchedBatch:
		return "batch"
	case SchedIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Config tunes a Server. A zero value in any field is replaced by the
// corresponding DefaultConfig value in New; a negative timeout
// disables that timeout entirely.
type Config struct {
	MaxConnections int           // concurrent handler cap, also the listen backlog
	ReadBufferSize int           // request buffer, one read per connection
	AcceptInterval time.Duration // retry sleep while accept would block
	ReadTimeout    time.Duration // SO_RCVTIMEO on accepted sockets, negative to disable
	WriteTimeout   time.Duration // SO_SNDTIMEO on accepted sockets, negative to disable
}

// DefaultConfig provides working defaults for a loopback control port.
func DefaultConfig() Config {
	return Config{
		MaxConnections: 15,
		ReadBufferSize: 1024,
		AcceptInterval: 100 * time.Millisecond,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   10 * time.Second,
	}
}

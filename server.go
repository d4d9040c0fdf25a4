package cmdserve

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"cmdserve/internal/netutil"
)

// ServerState is the lifecycle state of a Server.
type ServerState int32

const (
	StateStopped ServerState = iota
	StateStarting
	StateRunning
	StateStopping
)

// String returns a human-readable name for the state.
func (s ServerState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Server owns a loopback listening socket and the accept loop feeding
// per-connection handler goroutines. Instances are independent; a
// process may run several on different ports.
type Server struct {
	cfg Config

	// mu serializes Start/Stop transitions. state is additionally
	// readable lock-free so the accept loop and IsRunning never block,
	// including from signal-handling contexts.
	mu    sync.Mutex
	state atomic.Int32

	lfd  int // listening socket, -1 while not bound; owned by Start/Stop
	port int // actual bound port

	// notify is the current session's sink, used for Stop/SetPriority
	// events; reads are serialized by mu. Connection handlers never
	// touch these fields: they receive per-session snapshots, since a
	// handler may outlive the session that spawned it.
	notify EventFunc

	acceptTID atomic.Int64  // OS thread id of the accept loop, 0 until known
	tidReady  chan struct{} // closed once acceptTID is stored
	loopDone  sync.WaitGroup
}

// New constructs a stopped Server. Zero-value config fields take their
// DefaultConfig values; a negative timeout disables that timeout.
func New(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = def.MaxConnections
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = def.ReadBufferSize
	}
	if cfg.AcceptInterval <= 0 {
		cfg.AcceptInterval = def.AcceptInterval
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	s := &Server{cfg: cfg, lfd: -1}
	s.state.Store(int32(StateStopped))
	return s
}

// State returns the current lifecycle state.
func (s *Server) State() ServerState { return ServerState(s.state.Load()) }

// IsRunning reports whether the server is accepting connections. It is
// a lock-free read, safe from any goroutine at any time.
func (s *Server) IsRunning() bool { return s.State() == StateRunning }

// Port returns the bound listening port, or 0 when the server has
// never been started. Useful when Start was given port 0.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// Start binds a listening socket to 127.0.0.1:port and launches the
// accept loop. reg supplies the command vocabulary; notify receives
// lifecycle and per-request events (nil for none). Start fails without
// side effects when the server is already running, when reg is nil, or
// when the socket cannot be bound; each failure is also reported
// through notify at Error severity.
func (s *Server) Start(port int, reg Dispatcher, notify EventFunc) error {
	if notify == nil {
		notify = func(Severity, string, bool) {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CompareAndSwap(int32(StateStopped), int32(StateStarting)) {
		notify(SeverityError, fmt.Sprintf("start refused: server is %s", s.State()), false)
		return ErrAlreadyRunning
	}
	if reg == nil {
		s.state.Store(int32(StateStopped))
		notify(SeverityError, "start refused: no command registry", false)
		return ErrNilDispatcher
	}

	notify(SeverityInfo, fmt.Sprintf("starting server on port %d", port), true)

	// Bind synchronously so a failed bind can never leave the accept
	// loop spinning on an invalid socket.
	lfd, bound, err := netutil.ListenLoopback(port, s.cfg.MaxConnections)
	if err != nil {
		s.state.Store(int32(StateStopped))
		notify(SeverityError, fmt.Sprintf("server failed to bind port %d: %v", port, err), false)
		return err
	}

	s.lfd = lfd
	s.port = bound
	s.notify = notify
	s.acceptTID.Store(0)
	s.tidReady = make(chan struct{})

	// The admission semaphore belongs to this session alone; handlers
	// left over from a previous session keep releasing into their own.
	sem := make(chan struct{}, s.cfg.MaxConnections)

	s.state.Store(int32(StateRunning))
	s.loopDone.Add(1)
	go s.acceptLoop(lfd, reg, notify, sem, s.tidReady)

	notify(SeverityInfo, fmt.Sprintf("server listening on 127.0.0.1:%d", bound), true)
	return nil
}

// Stop closes the listening socket, waits for the accept loop to exit
// and returns. In-flight connection handlers are not interrupted; each
// finishes its single request/response cycle on its own. Stop is
// idempotent and a no-op when the server is not running.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
		return
	}
	s.notify(SeverityInfo, "stopping server", true)

	// Closing the listener unblocks a pending accept; the flipped
	// state makes the loop exit on its next check.
	if s.lfd != -1 {
		_ = netutil.CloseListener(s.lfd)
		s.lfd = -1
		s.notify(SeverityDebug, "listening socket closed", true)
	}
	s.loopDone.Wait()

	s.state.Store(int32(StateStopped))
	s.notify(SeverityInfo, "server shutdown complete", true)
}

// SetPriority adjusts the scheduling class and priority of the accept
// loop's OS thread while the server is running. For SchedFIFO and
// SchedRR level is a realtime priority (1..99); for the other classes
// it is a nice value. OS failures are reported through the event sink
// and returned. Safe to call right after Start: it waits for the loop
// to pin its thread.
func (s *Server) SetPriority(class SchedClass, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() != StateRunning {
		return ErrNotRunning
	}
	// The loop stores its tid as its first action; this wait is
	// microseconds in practice, the timeout is a safety net.
	select {
	case <-s.tidReady:
	case <-time.After(5 * time.Second):
		return ErrNotRunning
	}
	tid := s.acceptTID.Load()
	if err := netutil.SetScheduling(int(tid), uint32(class), level); err != nil {
		if errors.Is(err, errors.ErrUnsupported) {
			err = ErrPlatformNotSupported
		}
		s.notify(SeverityError, fmt.Sprintf("set priority failed: %v", err), false)
		return err
	}
	s.notify(SeverityDebug, fmt.Sprintf("accept thread scheduling set to %s/%d", class, level), true)
	return nil
}

// acceptLoop accepts connections on lfd until the server leaves the
// running state. It runs pinned to one OS thread so SetPriority has a
// stable target. reg, notify and sem are this session's snapshots;
// they travel with each spawned handler so a handler that outlives a
// Stop/Start restart keeps answering from the session that accepted it.
func (s *Server) acceptLoop(lfd int, reg Dispatcher, notify EventFunc, sem chan struct{}, ready chan struct{}) {
	defer s.loopDone.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	s.acceptTID.Store(int64(netutil.ThreadID()))
	close(ready)

	for s.IsRunning() {
		fd, remote, err := netutil.Accept(lfd)
		if err != nil {
			if netutil.WouldBlock(err) {
				time.Sleep(s.cfg.AcceptInterval)
				continue
			}
			if !s.IsRunning() {
				break // listener closed by Stop
			}
			// Transient accept errors must not kill the server.
			notify(SeverityError, fmt.Sprintf("accept failed: %v", err), false)
			continue
		}
		notify(SeverityDebug, "accepted connection from "+remote, true)

		select {
		case sem <- struct{}{}:
			go s.handleConn(fd, remote, reg, notify, sem)
		default:
			notify(SeverityWarn, fmt.Sprintf("connection limit (%d) reached, rejecting %s", s.cfg.MaxConnections, remote), false)
			_ = netutil.Close(fd)
		}
	}
	notify(SeverityDebug, "accept loop exited", true)
}

//go:build linux || darwin

// Package netutil wraps the raw-socket syscalls the server engine is
// built on: loopback listener setup, accept, per-socket options and
// thread scheduling control.
package netutil

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ListenLoopback opens a non-blocking TCP listener bound to
// 127.0.0.1:port and returns its fd together with the actual bound
// port (useful when port is 0). The socket is switched to non-blocking
// mode exactly once, here.
func ListenLoopback(port, backlog int) (fd, boundPort int, err error) {
	fd, err = unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, 0, fmt.Errorf("socket: %w", err)
	}
	unix.CloseOnExec(fd)
	if err = SetReuseAddr(fd, true); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	// Matches the reference deployment; lets a restarted daemon rebind
	// while old handler sockets linger in TIME_WAIT.
	if err = SetReusePort(fd, true); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("setsockopt SO_REUSEPORT: %w", err)
	}
	sa := &unix.SockaddrInet4{Port: port, Addr: [4]byte{127, 0, 0, 1}}
	if err = unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("bind 127.0.0.1:%d: %w", port, err)
	}
	if backlog <= 0 {
		backlog = unix.SOMAXCONN
	}
	if err = unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("listen: %w", err)
	}
	if err = unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("set nonblock: %w", err)
	}
	name, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("getsockname: %w", err)
	}
	sa4, ok := name.(*unix.SockaddrInet4)
	if !ok {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("getsockname: unexpected sockaddr %T", name)
	}
	return fd, sa4.Port, nil
}

func SetReusePort(fd int, enable bool) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, boolToInt(enable))
}

func SetReuseAddr(fd int, enable bool) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, boolToInt(enable))
}

func SetNoDelay(fd int, enable bool) error {
	return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, boolToInt(enable))
}

// SetReadTimeout bounds blocking reads on fd via SO_RCVTIMEO.
func SetReadTimeout(fd int, d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

// SetWriteTimeout bounds blocking writes on fd via SO_SNDTIMEO.
func SetWriteTimeout(fd int, d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_SNDTIMEO, &tv)
}

// Read performs a single read, retrying only on EINTR.
func Read(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

// Write writes all of p, retrying on EINTR and short writes.
func Write(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

func Close(fd int) error { return unix.Close(fd) }

// CloseListener shuts the listening socket down before closing so a
// pending accept observes the shutdown immediately.
func CloseListener(fd int) error {
	_ = unix.Shutdown(fd, unix.SHUT_RDWR)
	return unix.Close(fd)
}

// WouldBlock reports whether err is the non-blocking "try again" case.
func WouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

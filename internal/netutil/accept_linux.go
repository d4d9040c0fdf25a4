//go:build linux

package netutil

import "golang.org/x/sys/unix"

// Accept accepts one pending connection on the non-blocking listener
// lfd. The accepted socket is left in blocking mode; the handler owns
// it for exactly one read/write cycle.
func Accept(lfd int) (fd int, remote string, err error) {
	fd, sa, err := unix.Accept4(lfd, unix.SOCK_CLOEXEC)
	if err != nil {
		return -1, "", err
	}
	return fd, SockaddrString(sa), nil
}

//go:build darwin

package netutil

import "golang.org/x/sys/unix"

// Accept accepts one pending connection on the non-blocking listener
// lfd. Darwin has no accept4, so close-on-exec is set separately, and
// BSD accept inherits O_NONBLOCK from the listener, so the accepted
// socket is switched back to blocking for the handler.
func Accept(lfd int) (fd int, remote string, err error) {
	fd, sa, err := unix.Accept(lfd)
	if err != nil {
		return -1, "", err
	}
	unix.CloseOnExec(fd)
	_ = unix.SetNonblock(fd, false)
	return fd, SockaddrString(sa), nil
}

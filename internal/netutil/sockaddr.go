//go:build linux || darwin

package netutil

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// SockaddrString renders an accepted peer address as "ip:port".
func SockaddrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return fmt.Sprintf("%s:%d", net.IP(a.Addr[:]).String(), a.Port)
	case *unix.SockaddrInet6:
		return fmt.Sprintf("[%s]:%d", net.IP(a.Addr[:]).String(), a.Port)
	default:
		return "unknown"
	}
}

// Package client implements the one-request-per-connection wire
// protocol spoken by a cmdserve server: dial, send one line, read the
// reply until the server closes the socket.
package client

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Query sends a single "command [argument]" request to addr and
// returns the server's reply with its trailing newline removed.
// timeout bounds the whole exchange; zero means no deadline.
func Query(addr, request string, timeout time.Duration) (string, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(timeout))
	}
	if _, err := conn.Write([]byte(request + "\n")); err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	// The server writes one line and closes; read to EOF.
	reply, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return strings.TrimRight(string(reply), "\r\n"), nil
}

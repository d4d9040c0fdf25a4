package cmdserve

import (
	"fmt"
	"strings"

	"cmdserve/internal/netutil"
)

// handleConn owns one accepted socket for its entire lifetime: one
// bounded read, one dispatch, one write, then close. The socket is
// closed on every exit path and the admission slot is released. reg,
// notify and sem are fixed references to the accepting session's
// registry, sink and semaphore — never read back from the Server,
// which may have been restarted with new ones by the time a parked
// handler wakes up.
func (s *Server) handleConn(fd int, remote string, reg Dispatcher, notify EventFunc, sem chan struct{}) {
	defer func() {
		_ = netutil.Close(fd)
		<-sem
	}()

	if t := s.cfg.ReadTimeout; t > 0 {
		_ = netutil.SetReadTimeout(fd, t)
	}
	if t := s.cfg.WriteTimeout; t > 0 {
		_ = netutil.SetWriteTimeout(fd, t)
	}
	_ = netutil.SetNoDelay(fd, true)

	buf := make([]byte, s.cfg.ReadBufferSize)
	n, err := netutil.Read(fd, buf)
	if err != nil || n <= 0 {
		// Peer closed or read failed before sending anything; no
		// response, no event.
		return
	}

	command, argument := parseRequest(string(buf[:n]))
	notify(SeverityInfo, fmt.Sprintf("dispatching command %q (argument %q) from %s", command, argument, remote), true)

	response := reg.Dispatch(command, argument)
	notify(SeverityDebug, "response: "+response, true)

	// Write failures are not distinguished from success; the client
	// observing a closed socket is the only signal either way.
	_ = netutil.Write(fd, []byte(response+"\n"))
}

// parseRequest derives (command, argument) from raw client input:
// only the first line counts, surrounding whitespace is trimmed and
// the line splits on the first whitespace run. The argument is empty
// when the line holds a bare command.
func parseRequest(raw string) (command, argument string) {
	line := raw
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}

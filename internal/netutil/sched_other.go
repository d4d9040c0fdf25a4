//go:build darwin

package netutil

import "errors"

// ThreadID is a stub on platforms without gettid. It returns -1 so a
// caller can still reach SetScheduling and get the unsupported error.
func ThreadID() int { return -1 }

// SetScheduling is unsupported outside Linux.
func SetScheduling(tid int, policy uint32, level int) error {
	return errors.ErrUnsupported
}

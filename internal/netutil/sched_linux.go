//go:build linux

package netutil

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ThreadID returns the kernel id of the calling OS thread. Callers
// must be pinned with runtime.LockOSThread for the id to stay valid.
func ThreadID() int { return unix.Gettid() }

// SetScheduling applies a scheduling policy to the thread tid via
// sched_setattr. For SCHED_FIFO and SCHED_RR level is the realtime
// priority; for the normal classes it is a nice value.
func SetScheduling(tid int, policy uint32, level int) error {
	attr := unix.SchedAttr{
		Size:   unix.SizeofSchedAttr,
		Policy: policy,
	}
	switch policy {
	case unix.SCHED_FIFO, unix.SCHED_RR:
		if level < 1 || level > 99 {
			return fmt.Errorf("realtime priority %d out of range 1..99", level)
		}
		attr.Priority = uint32(level)
	case unix.SCHED_IDLE:
		// nice is ignored for idle scheduling
	default:
		if level < -20 || level > 19 {
			return fmt.Errorf("nice value %d out of range -20..19", level)
		}
		attr.Nice = int32(level)
	}
	if err := unix.SchedSetAttr(tid, &attr, 0); err != nil {
		return fmt.Errorf("sched_setattr(tid=%d, policy=%d): %w", tid, policy, err)
	}
	return nil
}

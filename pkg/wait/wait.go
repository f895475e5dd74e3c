// Package wait reaps child processes and decodes their state changes.
//
// A state change is returned as one of the [Status] variants. A WNOHANG wait
// with no child ready returns [StillAlive], not an error.
package wait

import (
	"fmt"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/unistd"

	"golang.org/x/sys/unix"
)

// AnyChild waits for any child of the caller.
const AnyChild unistd.Pid = -1

// Group selects any child in the process group pgid. Group(0) selects the
// caller's own group.
func Group(pgid unistd.Pid) unistd.Pid { return -pgid }

// Waitpid waits for a state change of pid, which is a child pid, [AnyChild]
// or a [Group].
//
// With WNOHANG and no child ready the result is [StillAlive]. EINTR is
// returned to the caller; wrap the call in [errno.RetryEINTRValue] to retry.
// ECHILD means there is no matching child to wait for.
func Waitpid(pid unistd.Pid, flags Flags) (Status, error) {
	if _, err := flagsTable.FromBits(flags); err != nil {
		return nil, fmt.Errorf("waitpid: %w", err)
	}

	var ws unix.WaitStatus

	wpid, err := unix.Wait4(pid.Raw(), &ws, int(flags), nil)
	if err != nil {
		return nil, err
	}

	if wpid == 0 {
		return StillAlive{}, nil
	}

	return Decode(unistd.Pid(wpid), uint32(ws))
}

// Wait waits for any child to terminate.
func Wait() (Status, error) {
	return Waitpid(AnyChild, 0)
}

// Decode converts the raw status word reported for pid.
func Decode(pid unistd.Pid, raw uint32) (Status, error) {
	ws := unix.WaitStatus(raw)

	switch {
	case ws.Exited():
		return Exited{PID: pid, Code: ws.ExitStatus()}, nil
	case ws.Signaled():
		return Signaled{PID: pid, Signal: signalOf(ws.Signal()), CoreDumped: ws.CoreDump()}, nil
	case ws.Stopped():
		return decodeStop(pid, ws), nil
	case ws.Continued():
		return Continued{PID: pid}, nil
	}

	return nil, fmt.Errorf("%w: undecodable wait status %#x for pid %d", errno.ErrInvalidInput, raw, pid)
}

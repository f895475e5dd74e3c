//go:build !linux

package wait

import (
	"github.com/calvinalkan/posix/pkg/unistd"

	"golang.org/x/sys/unix"
)

func decodeStop(pid unistd.Pid, ws unix.WaitStatus) Status {
	return Stopped{PID: pid, Signal: signalOf(ws.StopSignal())}
}

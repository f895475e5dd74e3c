package wait

import (
	"fmt"

	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/unistd"

	"golang.org/x/sys/unix"
)

// PtraceEvent reports a tracee stopped at a PTRACE_EVENT_* stop. Event is the
// PTRACE_EVENT_* number.
type PtraceEvent struct {
	PID    unistd.Pid
	Signal signal.Signal
	Event  int
}

// PtraceSyscall reports a tracee stopped at syscall entry or exit with
// PTRACE_O_TRACESYSGOOD set.
type PtraceSyscall struct {
	PID unistd.Pid
}

func (s PtraceEvent) Pid() unistd.Pid { return s.PID }
func (s PtraceSyscall) Pid() unistd.Pid { return s.PID }

func (PtraceEvent) status() {}
func (PtraceSyscall) status() {}

func (s PtraceEvent) String() string {
	return fmt.Sprintf("pid %d ptrace event %d (%s)", s.PID, s.Event, s.Signal)
}

func (s PtraceSyscall) String() string {
	return fmt.Sprintf("pid %d ptrace syscall stop", s.PID)
}

// sysgoodTrap is the stop signal of a syscall stop under
// PTRACE_O_TRACESYSGOOD.
const sysgoodTrap = unix.SIGTRAP | 0x80

func decodeStop(pid unistd.Pid, ws unix.WaitStatus) Status {
	sig := ws.StopSignal()

	if sig == sysgoodTrap {
		return PtraceSyscall{PID: pid}
	}

	if cause := ws.TrapCause(); cause > 0 {
		return PtraceEvent{PID: pid, Signal: signalOf(sig), Event: cause}
	}

	return Stopped{PID: pid, Signal: signalOf(sig)}
}

package wait

import (
	"fmt"

	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/unistd"

	"golang.org/x/sys/unix"
)

// Status is a child state change. It is one of [Exited], [Signaled],
// [Stopped], [Continued], [StillAlive] and, on Linux, PtraceEvent and
// PtraceSyscall.
type Status interface {
	// Pid is the child the status belongs to; 0 for [StillAlive].
	Pid() unistd.Pid
	String() string

	status()
}

// Exited reports a child that called exit.
type Exited struct {
	PID  unistd.Pid
	Code int
}

// Signaled reports a child terminated by a signal.
type Signaled struct {
	PID        unistd.Pid
	Signal     signal.Signal
	CoreDumped bool
}

// Stopped reports a child stopped by a signal (WUNTRACED or ptrace).
type Stopped struct {
	PID    unistd.Pid
	Signal signal.Signal
}

// Continued reports a stopped child resumed by SIGCONT (WCONTINUED).
type Continued struct {
	PID unistd.Pid
}

// StillAlive is the result of a WNOHANG wait when no child changed state.
type StillAlive struct{}

func (s Exited) Pid() unistd.Pid { return s.PID }
func (s Signaled) Pid() unistd.Pid { return s.PID }
func (s Stopped) Pid() unistd.Pid { return s.PID }
func (s Continued) Pid() unistd.Pid { return s.PID }
func (StillAlive) Pid() unistd.Pid { return 0 }

func (Exited) status() {}
func (Signaled) status() {}
func (Stopped) status() {}
func (Continued) status() {}
func (StillAlive) status() {}

func (s Exited) String() string {
	return fmt.Sprintf("pid %d exited with code %d", s.PID, s.Code)
}

func (s Signaled) String() string {
	if s.CoreDumped {
		return fmt.Sprintf("pid %d killed by %s (core dumped)", s.PID, s.Signal)
	}

	return fmt.Sprintf("pid %d killed by %s", s.PID, s.Signal)
}

func (s Stopped) String() string {
	return fmt.Sprintf("pid %d stopped by %s", s.PID, s.Signal)
}

func (s Continued) String() string {
	return fmt.Sprintf("pid %d continued", s.PID)
}

func (StillAlive) String() string { return "still alive" }

func signalOf(s unix.Signal) signal.Signal { return signal.Signal(s) }

// Package signal sends signals, manages signal dispositions and builds signal
// sets.
//
// Dispositions are installed through the Go runtime (os/signal), so handlers
// never run in signal context. They run one at a time on a dispatcher
// goroutine; see [Sigaction] for what that means for SaFlags.
package signal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/unistd"

	"golang.org/x/sys/unix"
)

// Signal is a signal number valid on the target platform.
type Signal int

// Signals defined on every supported platform.
const (
	SIGHUP    = Signal(unix.SIGHUP)
	SIGINT    = Signal(unix.SIGINT)
	SIGQUIT   = Signal(unix.SIGQUIT)
	SIGILL    = Signal(unix.SIGILL)
	SIGTRAP   = Signal(unix.SIGTRAP)
	SIGABRT   = Signal(unix.SIGABRT)
	SIGBUS    = Signal(unix.SIGBUS)
	SIGFPE    = Signal(unix.SIGFPE)
	SIGKILL   = Signal(unix.SIGKILL)
	SIGUSR1   = Signal(unix.SIGUSR1)
	SIGSEGV   = Signal(unix.SIGSEGV)
	SIGUSR2   = Signal(unix.SIGUSR2)
	SIGPIPE   = Signal(unix.SIGPIPE)
	SIGALRM   = Signal(unix.SIGALRM)
	SIGTERM   = Signal(unix.SIGTERM)
	SIGCHLD   = Signal(unix.SIGCHLD)
	SIGCONT   = Signal(unix.SIGCONT)
	SIGSTOP   = Signal(unix.SIGSTOP)
	SIGTSTP   = Signal(unix.SIGTSTP)
	SIGTTIN   = Signal(unix.SIGTTIN)
	SIGTTOU   = Signal(unix.SIGTTOU)
	SIGURG    = Signal(unix.SIGURG)
	SIGXCPU   = Signal(unix.SIGXCPU)
	SIGXFSZ   = Signal(unix.SIGXFSZ)
	SIGVTALRM = Signal(unix.SIGVTALRM)
	SIGPROF   = Signal(unix.SIGPROF)
	SIGWINCH  = Signal(unix.SIGWINCH)
	SIGIO     = Signal(unix.SIGIO)
	SIGSYS    = Signal(unix.SIGSYS)
)

// ErrInvalidSignal is returned for numbers outside 1..[Max] and for names
// that are not signals. It wraps [errno.ErrInvalidInput].
var ErrInvalidSignal = fmt.Errorf("%w: invalid signal", errno.ErrInvalidInput)

// Max is the highest signal number of the platform.
const Max = maxSignal

// FromRaw validates n as a signal number.
func FromRaw(n int) (Signal, error) {
	s := Signal(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSignal, n)
	}

	return s, nil
}

// Raw returns the signal number.
func (s Signal) Raw() int { return int(s) }

// Valid reports whether s is in 1..[Max].
func (s Signal) Valid() bool { return s >= 1 && s <= Max }

// Catchable reports whether a handler may be installed for s. SIGKILL and
// SIGSTOP cannot be caught, blocked or ignored.
func (s Signal) Catchable() bool { return s.Valid() && s != SIGKILL && s != SIGSTOP }

// String returns the signal's name, e.g. "SIGTERM", or "signal N" for numbers
// without one (real-time signals).
func (s Signal) String() string {
	if name := unix.SignalName(unix.Signal(s)); name != "" {
		return name
	}

	return "signal " + strconv.Itoa(int(s))
}

// Parse accepts a signal name with or without the SIG prefix, in any case
// ("TERM", "sigterm"), or a decimal number.
func Parse(str string) (Signal, error) {
	if n, err := strconv.Atoi(str); err == nil {
		return FromRaw(n)
	}

	name := strings.ToUpper(strings.TrimSpace(str))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}

	n := unix.SignalNum(name)
	if n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSignal, str)
	}

	return FromRaw(int(n))
}

// Named returns the signals that have a name, in numeric order.
func Named() []Signal {
	var out []Signal

	for s := Signal(1); s <= Max; s++ {
		if unix.SignalName(unix.Signal(s)) != "" {
			out = append(out, s)
		}
	}

	return out
}

// Kill sends sig to pid. pid follows kill(2): a process, 0 for the caller's
// process group, -1 for every permitted process, -pgid for a group.
func Kill(pid unistd.Pid, sig Signal) error {
	if !sig.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSignal, int(sig))
	}

	return unix.Kill(pid.Raw(), unix.Signal(sig))
}

// Probe checks whether pid exists and may be signalled, by sending the null
// signal. ESRCH means no such process, EPERM means it exists but is not ours.
func Probe(pid unistd.Pid) error {
	return unix.Kill(pid.Raw(), 0)
}

// Killpg sends sig to every process in the group pgrp; 0 is the caller's
// group.
func Killpg(pgrp unistd.Pid, sig Signal) error {
	if pgrp < 0 {
		return fmt.Errorf("%w: process group %d", errno.ErrInvalidInput, pgrp)
	}

	return Kill(-pgrp, sig)
}

// Raise sends sig to the calling process.
func Raise(sig Signal) error {
	return Kill(unistd.Getpid(), sig)
}

//go:build linux || freebsd || dragonfly

// Package alarm schedules SIGALRM for the process, like alarm(2).
//
// There is one alarm per process, shared with anything else that uses
// ITIMER_REAL. Install a handler for SIGALRM first (signal.Sigaction);
// under the default disposition the alarm terminates the process.
package alarm

import (
	"fmt"
	"math"

	"github.com/calvinalkan/posix/pkg/errno"

	"golang.org/x/sys/unix"
)

// Set schedules SIGALRM in secs seconds, replacing any pending alarm. It
// returns the seconds the previous alarm had left and whether one was
// pending. secs must be at least 1; use [Cancel] to clear the alarm.
func Set(secs uint) (prev uint, pending bool, err error) {
	if secs == 0 {
		return 0, false, fmt.Errorf("%w: alarm of 0 seconds (use Cancel)", errno.ErrInvalidInput)
	}

	if secs > math.MaxInt32 {
		return 0, false, fmt.Errorf("%w: alarm of %d seconds exceeds %d", errno.ErrInvalidInput, secs, math.MaxInt32)
	}

	return swap(unix.NsecToTimeval(int64(secs) * 1e9))
}

// Cancel clears the pending alarm. It returns the seconds it had left and
// whether one was pending.
func Cancel() (prev uint, pending bool, err error) {
	return swap(unix.Timeval{})
}

func swap(value unix.Timeval) (uint, bool, error) {
	old, err := setitimer(value)
	if err != nil {
		return 0, false, err
	}

	sec, nsec := old.Unix()
	if sec == 0 && nsec == 0 {
		return 0, false, nil
	}

	return remaining(sec, nsec/1000), true, nil
}

// remaining rounds a timer value to whole seconds the way alarm(2) reports
// it: up from half a second, and never 0 while the alarm is pending.
func remaining(sec, usec int64) uint {
	if usec >= 500000 || (sec == 0 && usec > 0) {
		sec++
	}

	return uint(sec)
}

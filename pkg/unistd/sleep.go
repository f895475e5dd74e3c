//go:build linux || dragonfly || freebsd || netbsd || openbsd

package unistd

import (
	"time"

	"golang.org/x/sys/unix"
)

// Sleep suspends the calling thread for secs seconds and returns the number
// of whole seconds left when a signal interrupted it, or 0 when it slept the
// full time.
//
// Any signal delivered to the thread can cut the sleep short, including
// signals the Go runtime handles itself. Loop on the result when the full
// duration matters.
func Sleep(secs uint) uint {
	req := unix.NsecToTimespec(int64(time.Duration(secs) * time.Second))

	var rem unix.Timespec
	if err := unix.Nanosleep(&req, &rem); err != nil {
		sec, nsec := rem.Unix()
		if nsec > 0 {
			sec++
		}

		return uint(sec)
	}

	return 0
}

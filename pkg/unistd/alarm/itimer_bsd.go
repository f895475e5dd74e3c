//go:build freebsd || dragonfly

package alarm

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// itimerval is struct itimerval from <sys/time.h>.
type itimerval struct {
	interval unix.Timeval
	value    unix.Timeval
}

const itimerReal = 0

func setitimer(value unix.Timeval) (unix.Timeval, error) {
	in := itimerval{value: value}

	var out itimerval

	_, _, e := unix.Syscall(unix.SYS_SETITIMER, itimerReal,
		uintptr(unsafe.Pointer(&in)), uintptr(unsafe.Pointer(&out)))
	if e != 0 {
		return unix.Timeval{}, e
	}

	return out.value, nil
}

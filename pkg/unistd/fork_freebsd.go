package unistd

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

//go:nosplit
func rawFork() (uintptr, unix.Errno) {
	r1, _, err := unix.RawSyscall(unix.SYS_FORK, 0, 0, 0)
	return r1, err
}

// Exit terminates the process immediately with code, without running
// deferred functions or flushing buffers. It is safe in a forked child.
//
//go:nosplit
func Exit(code int) {
	for {
		unix.RawSyscall(unix.SYS_EXIT, uintptr(code), 0, 0)
	}
}

//go:nosplit
func rawDup2(from, to int) unix.Errno {
	if from == to {
		_, _, err := unix.RawSyscall(unix.SYS_FCNTL, uintptr(to), unix.F_SETFD, 0)
		return err
	}

	_, _, err := unix.RawSyscall(unix.SYS_DUP2, uintptr(from), uintptr(to), 0)

	return err
}

//go:nosplit
func rawWrite(f int, p *byte, n int) unix.Errno {
	_, _, err := unix.RawSyscall(unix.SYS_WRITE, uintptr(f), uintptr(unsafe.Pointer(p)), uintptr(n))
	return err
}

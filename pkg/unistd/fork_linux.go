package unistd

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// rawFork is clone(SIGCHLD) with no new stack, which is fork(2) on every
// architecture (arm64 and riscv64 have no fork system call).
//
//go:nosplit
func rawFork() (uintptr, unix.Errno) {
	flags, stack := uintptr(unix.SIGCHLD), uintptr(0)

	var (
		r1  uintptr
		err unix.Errno
	)

	if runtime.GOARCH == "s390x" {
		r1, _, err = unix.RawSyscall6(unix.SYS_CLONE, stack, flags, 0, 0, 0, 0)
	} else {
		r1, _, err = unix.RawSyscall6(unix.SYS_CLONE, flags, stack, 0, 0, 0, 0)
	}

	return r1, err
}

// Exit terminates the process immediately with code, without running
// deferred functions or flushing buffers. It is safe in a forked child.
//
//go:nosplit
func Exit(code int) {
	for {
		unix.RawSyscall(unix.SYS_EXIT_GROUP, uintptr(code), 0, 0)
	}
}

//go:nosplit
func rawDup2(from, to int) unix.Errno {
	if from == to {
		_, _, err := unix.RawSyscall(unix.SYS_FCNTL, uintptr(to), unix.F_SETFD, 0)
		return err
	}

	_, _, err := unix.RawSyscall(unix.SYS_DUP3, uintptr(from), uintptr(to), 0)

	return err
}

//go:nosplit
func rawWrite(f int, p *byte, n int) unix.Errno {
	_, _, err := unix.RawSyscall(unix.SYS_WRITE, uintptr(f), uintptr(unsafe.Pointer(p)), uintptr(n))
	return err
}

//go:build linux || freebsd

package unistd

import (
	"syscall"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fcntl"

	"golang.org/x/sys/unix"
)

// spawnExitCode is the child's exit code when its exec failed.
const spawnExitCode = 127

// Spawn forks a child that executes img and returns the child's pid once the
// exec succeeded.
//
// If the exec fails in the child, the child exits with code 127, Spawn reaps
// it and returns the errno the exec failed with (for example ENOENT), so an
// exec failure is never mistaken for a child that ran and exited. The caller
// reaps successful children itself, typically with wait.Waitpid.
//
// Descriptors are inherited unless they have FD_CLOEXEC set; use
// [ExecImage.Redirect] to place descriptors at fixed numbers in the child.
func Spawn(img *ExecImage) (Pid, error) {
	r, w, err := Pipe2(fcntl.O_CLOEXEC)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	wfd := w.FD().Raw()

	syscall.ForkLock.Lock()
	runtimeBeforeFork()

	raw, forkErr := forkExec(img, wfd)

	runtimeAfterFork()
	syscall.ForkLock.Unlock()

	_ = w.Close()

	if forkErr != 0 {
		return 0, forkErr
	}

	pid := Pid(raw)

	var buf [4]byte

	n, err := errno.RetryEINTRValue(func() (int, error) {
		return unix.Read(r.FD().Raw(), buf[:])
	})
	if err != nil {
		reap(pid)
		return 0, err
	}

	if n == 0 {
		return pid, nil
	}

	reap(pid)

	code := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24

	return 0, unix.Errno(code)
}

// forkExec forks. The child applies img, writes the exec errno to errFD and
// exits; only the parent returns. The caller holds syscall.ForkLock and has
// called runtimeBeforeFork, so nothing on the child path may grow the stack.
//
//go:norace
//go:nosplit
func forkExec(img *ExecImage, errFD int) (uintptr, unix.Errno) {
	pid, err := rawFork()
	if err != 0 || pid != 0 {
		return pid, err
	}

	runtimeAfterForkInChild()

	code := img.exec()

	buf := [4]byte{byte(code), byte(code >> 8), byte(code >> 16), byte(code >> 24)}
	rawWrite(errFD, &buf[0], len(buf))

	Exit(spawnExitCode)

	return 0, 0
}

func reap(pid Pid) {
	var ws unix.WaitStatus

	_, _ = errno.RetryEINTRValue(func() (int, error) {
		return unix.Wait4(int(pid), &ws, 0, nil)
	})
}

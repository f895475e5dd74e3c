//go:build linux || freebsd

package unistd

import (
	"syscall"
	_ "unsafe" // for go:linkname
)

// The runtime's fork hooks, used by syscall.forkExec. BeforeFork blocks
// signals, disables preemption on this thread and poisons its stack guard so
// any stack growth throws; AfterFork undoes that in the parent.
// AfterForkInChild resets the child's signal handlers to their defaults and
// leaves the stack guard poisoned.

//go:linkname runtimeBeforeFork syscall.runtime_BeforeFork
func runtimeBeforeFork()

//go:linkname runtimeAfterFork syscall.runtime_AfterFork
func runtimeAfterFork()

//go:linkname runtimeAfterForkInChild syscall.runtime_AfterForkInChild
func runtimeAfterForkInChild()

// ForkResult tells the two processes returning from [Fork] apart.
type ForkResult struct {
	child   Pid
	isChild bool
}

// IsChild reports whether this is the new process.
//
//go:nosplit
func (r ForkResult) IsChild() bool { return r.isChild }

// IsParent reports whether this is the original process.
func (r ForkResult) IsParent() bool { return !r.isChild }

// Child returns the new process id in the parent; false in the child.
func (r ForkResult) Child() (Pid, bool) {
	if r.isChild {
		return 0, false
	}

	return r.child, true
}

func (r ForkResult) String() string {
	if r.isChild {
		return "Child"
	}

	return "Parent{child: " + r.child.String() + "}"
}

// Fork creates a child process that is a copy of the caller.
//
// The child starts with a single thread: the one that called Fork. Every other
// thread of the Go runtime (the scheduler, the garbage collector, goroutines
// blocked in system calls) does not exist in the child, and any lock one of
// them held at the moment of the fork stays held forever. The child's stack
// guard stays poisoned, so calling any function that checks for stack growth
// aborts the child with "stack growth after fork". The child may only:
//
//   - test [ForkResult.IsChild], before anything else,
//   - call [ExecImage.ExecOrExit], with the image prepared before Fork,
//   - call [Exit].
//
// Most programs should use [Spawn], which forks, execs and reports exec
// failures back to the parent without running any Go code in the child.
//
// syscall.ForkLock is held across the fork so no descriptor without
// FD_CLOEXEC is half-created when the child is made. Fork fails with EAGAIN
// or ENOMEM when the kernel cannot create the process.
//
//go:norace
func Fork() (ForkResult, error) {
	syscall.ForkLock.Lock()

	runtimeBeforeFork()

	pid, err := rawFork()
	if err != 0 {
		runtimeAfterFork()
		syscall.ForkLock.Unlock()

		return ForkResult{}, err
	}

	if pid == 0 {
		runtimeAfterForkInChild()

		return ForkResult{isChild: true}, nil
	}

	runtimeAfterFork()
	syscall.ForkLock.Unlock()

	return ForkResult{child: Pid(pid)}, nil
}

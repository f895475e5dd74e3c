package fcntl

import (
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// FlockArg selects the flock(2) operation.
type FlockArg int

const (
	LockShared            FlockArg = unix.LOCK_SH
	LockExclusive         FlockArg = unix.LOCK_EX
	Unlock                FlockArg = unix.LOCK_UN
	LockSharedNonblock    FlockArg = unix.LOCK_SH | unix.LOCK_NB
	LockExclusiveNonblock FlockArg = unix.LOCK_EX | unix.LOCK_NB
)

func (a FlockArg) String() string {
	switch a {
	case LockShared:
		return "LOCK_SH"
	case LockExclusive:
		return "LOCK_EX"
	case Unlock:
		return "LOCK_UN"
	case LockSharedNonblock:
		return "LOCK_SH|LOCK_NB"
	case LockExclusiveNonblock:
		return "LOCK_EX|LOCK_NB"
	default:
		return "FlockArg(?)"
	}
}

// Flock applies or removes an advisory lock on the open file f.
//
// Non-blocking variants fail with EWOULDBLOCK when the lock is held
// elsewhere. Blocking variants may fail with EINTR when a signal arrives;
// wrap the call in [errno.RetryEINTR] to restart it.
func Flock(f fd.FD, arg FlockArg) error {
	return unix.Flock(f.Raw(), int(arg))
}

// Package errno is the error model shared by every wrapper in this module.
//
// A failing system call is reported as the bare [Errno] the kernel returned,
// so callers can compare with == or [errors.Is] and still read the numeric
// value. Arguments that are rejected before any system call is made are
// reported as errors wrapping [ErrInvalidInput].
//
// No wrapper retries on EINTR by itself. Callers that want retry semantics opt
// in with [RetryEINTR] or [RetryEINTRValue].
package errno

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Errno is the platform error number. It is the same type as [unix.Errno] and
// [syscall.Errno] values compare equal through [errors.Is].
type Errno = unix.Errno

// Common error numbers, re-exported so callers do not need to import x/sys.
const (
	EPERM   = unix.EPERM
	ENOENT  = unix.ENOENT
	ESRCH   = unix.ESRCH
	EINTR   = unix.EINTR
	EIO     = unix.EIO
	E2BIG   = unix.E2BIG
	EBADF   = unix.EBADF
	ECHILD  = unix.ECHILD
	EAGAIN  = unix.EAGAIN
	ENOMEM  = unix.ENOMEM
	EACCES  = unix.EACCES
	EFAULT  = unix.EFAULT
	EEXIST  = unix.EEXIST
	EXDEV   = unix.EXDEV
	ENOTDIR = unix.ENOTDIR
	EISDIR  = unix.EISDIR
	EINVAL  = unix.EINVAL
	EMFILE  = unix.EMFILE
	ESPIPE  = unix.ESPIPE
	EPIPE   = unix.EPIPE
	ERANGE  = unix.ERANGE
	ENOSYS  = unix.ENOSYS
	ENOTSUP = unix.ENOTSUP

	EWOULDBLOCK = unix.EWOULDBLOCK
)

// ErrInvalidInput indicates that arguments were rejected before the operating
// system was asked to do anything.
//
// Common causes: a string containing a NUL byte, flag bits that are not
// defined for the flag set, a signal number outside the platform's range.
//
// This is a programming error.
var ErrInvalidInput = errors.New("invalid input")

// From extracts the error number from err, unwrapping as needed.
//
// It reports false when err is nil or does not carry an error number, for
// example a precondition error.
func From(err error) (Errno, bool) {
	var e Errno
	if errors.As(err, &e) {
		return e, true
	}

	return 0, false
}

// Is reports whether err carries the error number want.
func Is(err error, want Errno) bool {
	got, ok := From(err)
	return ok && got == want
}

// IsWouldBlock reports whether err means "the operation would block", which
// is EAGAIN or EWOULDBLOCK depending on the platform and call.
func IsWouldBlock(err error) bool {
	return Is(err, EAGAIN) || Is(err, EWOULDBLOCK)
}

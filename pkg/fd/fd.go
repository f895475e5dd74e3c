// Package fd provides the descriptor handle types used across this module.
//
// [FD] is a borrowed descriptor: it names an open file but does not own it.
// [Owned] is a descriptor the holder must close exactly once; constructors
// that create descriptors (open, pipe, dup, mkstemp) return *Owned.
package fd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"golang.org/x/sys/unix"
)

// FD is an open file descriptor number.
type FD int

// Standard descriptors.
const (
	Stdin  FD = 0
	Stdout FD = 1
	Stderr FD = 2
)

// CWD is the directory-descriptor sentinel accepted by the *at family:
// relative paths resolve against the current working directory.
const CWD FD = unix.AT_FDCWD

// Invalid is returned by [Owned.FD] after the descriptor was closed or released.
const Invalid FD = -1

// FromRaw converts a raw descriptor number. No validation is performed; a
// number that is not open fails with EBADF at the next call that uses it.
func FromRaw(n int) FD { return FD(n) }

// Raw returns the descriptor number.
func (f FD) Raw() int { return int(f) }

// Valid reports whether f can name an open descriptor (f >= 0).
func (f FD) Valid() bool { return f >= 0 }

func (f FD) String() string {
	if f == CWD {
		return "AT_FDCWD"
	}

	return strconv.Itoa(int(f))
}

// ErrClosed is returned by [Owned.File] when the descriptor was already closed
// or released.
var ErrClosed = errors.New("fd: already closed")

// Owned is a descriptor with a single owner responsible for closing it.
//
// Close is idempotent; Release and File transfer ownership elsewhere. Owned is
// safe for concurrent use, but the descriptor number itself may be reused by
// the kernel as soon as Close returns, so callers must not keep using the
// number obtained from [Owned.FD] after closing.
type Owned struct {
	mu sync.Mutex
	fd FD
}

// Own takes ownership of f.
func Own(f FD) *Owned {
	return &Owned{fd: f}
}

// FD returns the borrowed descriptor, or [Invalid] once closed or released.
func (o *Owned) FD() FD {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.fd
}

// Close closes the descriptor.
//
// Close is idempotent - calling it multiple times is safe and subsequent calls
// return nil. A failing close(2) is not retried: on Linux the descriptor is
// released even when close reports EINTR, and retrying could close a
// descriptor another goroutine has opened in the meantime.
func (o *Owned) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fd == Invalid {
		return nil
	}

	f := o.fd
	o.fd = Invalid

	return unix.Close(int(f))
}

// Release gives up ownership and returns the descriptor. The caller becomes
// responsible for closing it.
func (o *Owned) Release() FD {
	o.mu.Lock()
	defer o.mu.Unlock()

	f := o.fd
	o.fd = Invalid

	return f
}

// File transfers ownership to an [os.File] with the given name. Afterwards
// only the returned file may close the descriptor.
func (o *Owned) File(name string) (*os.File, error) {
	f := o.Release()
	if f == Invalid {
		return nil, fmt.Errorf("%w: %s", ErrClosed, name)
	}

	return os.NewFile(uintptr(f), name), nil
}

func (o *Owned) String() string {
	return "fd(" + o.FD().String() + ")"
}

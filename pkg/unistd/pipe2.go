//go:build linux || dragonfly || freebsd || netbsd || openbsd

package unistd

import (
	"fmt"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// Pipe2 creates a pipe with flags applied to both ends atomically, so a
// concurrent fork cannot inherit the descriptors before O_CLOEXEC is set.
// Accepted flags: O_CLOEXEC, O_NONBLOCK (and O_DIRECT on Linux).
func Pipe2(flags fcntl.OFlag) (r, w *fd.Owned, err error) {
	if extra := flags &^ pipe2Flags; extra != 0 {
		return nil, nil, fmt.Errorf("%w: pipe2 does not accept %s", errno.ErrInvalidInput, extra)
	}

	var p [2]int
	if err := unix.Pipe2(p[:], int(flags)); err != nil {
		return nil, nil, err
	}

	return fd.Own(fd.FD(p[0])), fd.Own(fd.FD(p[1])), nil
}

// Dup3 is [Dup2] with flags; only O_CLOEXEC is accepted. Unlike dup2, from
// and to must differ (EINVAL otherwise).
func Dup3(from, to fd.FD, flags fcntl.OFlag) error {
	if extra := flags &^ fcntl.O_CLOEXEC; extra != 0 {
		return fmt.Errorf("%w: dup3 does not accept %s", errno.ErrInvalidInput, extra)
	}

	return unix.Dup3(from.Raw(), to.Raw(), int(flags))
}

//go:build dragonfly || freebsd || netbsd

package unistd

import (
	"unsafe"

	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// <sys/unistd.h> numbering.
const (
	PC_LINK_MAX PathconfVar = iota + 1
	PC_MAX_CANON
	PC_MAX_INPUT
	PC_NAME_MAX
	PC_PATH_MAX
	PC_PIPE_BUF
	PC_CHOWN_RESTRICTED
	PC_NO_TRUNC
	PC_VDISABLE
)

// Pathconf returns a limit of the file system holding path. limited is false
// when there is no limit.
func Pathconf(path string, name PathconfVar) (value int64, limited bool, err error) {
	if err := checkPathconf("pathconf", name); err != nil {
		return 0, false, err
	}

	p, err := unix.BytePtrFromString(path)
	if err != nil {
		return 0, false, err
	}

	r, _, e := unix.Syscall(unix.SYS_PATHCONF, uintptr(unsafe.Pointer(p)), uintptr(name), 0)

	return pathconfResult(r, e)
}

// Fpathconf is [Pathconf] for an open descriptor.
func Fpathconf(f fd.FD, name PathconfVar) (value int64, limited bool, err error) {
	if err := checkPathconf("fpathconf", name); err != nil {
		return 0, false, err
	}

	r, _, e := unix.Syscall(unix.SYS_FPATHCONF, uintptr(f.Raw()), uintptr(name), 0)

	return pathconfResult(r, e)
}

func pathconfResult(r uintptr, e unix.Errno) (int64, bool, error) {
	if e != 0 {
		return 0, false, e
	}

	v := int64(int(r))
	if v == -1 {
		return 0, false, nil
	}

	return v, true, nil
}

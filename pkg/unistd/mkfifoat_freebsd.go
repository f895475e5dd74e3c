package unistd

import (
	"unsafe"

	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/stat"

	"golang.org/x/sys/unix"
)

// Mkfifoat creates a named pipe relative to dirfd.
func Mkfifoat(dirfd fd.FD, path string, mode stat.Mode) error {
	if err := stat.CheckMode("mkfifoat", mode); err != nil {
		return err
	}

	p, err := unix.BytePtrFromString(path)
	if err != nil {
		return err
	}

	_, _, e := unix.Syscall(unix.SYS_MKFIFOAT, uintptr(dirfd.Raw()), uintptr(unsafe.Pointer(p)), uintptr(mode))
	if e != 0 {
		return e
	}

	return nil
}

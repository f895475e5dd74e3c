package unistd

import (
	"unsafe"

	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// PrepareExecveat prepares an execveat(2) of path relative to dirfd. Accepted
// flags: AT_EMPTY_PATH (execute dirfd itself when path is empty) and
// AT_SYMLINK_NOFOLLOW.
func PrepareExecveat(dirfd fd.FD, path string, argv, envv []string, flags fcntl.AtFlags) (*ExecImage, error) {
	if err := fcntl.CheckAt("execveat", flags, fcntl.AT_EMPTY_PATH|fcntl.AT_SYMLINK_NOFOLLOW); err != nil {
		return nil, err
	}

	p, err := unix.BytePtrFromString(path)
	if err != nil {
		return nil, err
	}

	return newImage(execAt, p, dirfd.Raw(), int(flags), argv, envv)
}

// Execveat executes the program at path relative to dirfd. See
// [PrepareExecveat] for the flags. It returns only on failure.
func Execveat(dirfd fd.FD, path string, argv, envv []string, flags fcntl.AtFlags) error {
	img, err := PrepareExecveat(dirfd, path, argv, envv, flags)
	if err != nil {
		return err
	}

	return img.Exec()
}

// Fexecve executes the program open at f. On Linux this is
// execveat(f, "", AT_EMPTY_PATH). It returns only on failure.
func Fexecve(f fd.FD, argv, envv []string) error {
	img, err := PrepareFexecve(f, argv, envv)
	if err != nil {
		return err
	}

	return img.Exec()
}

//go:norace
//go:nosplit
func (img *ExecImage) rawExec() unix.Errno {
	switch img.mode {
	case execFD:
		_, _, err := unix.RawSyscall6(unix.SYS_EXECVEAT,
			uintptr(img.dirfd),
			uintptr(unsafe.Pointer(img.path)),
			uintptr(unsafe.Pointer(&img.argv[0])),
			uintptr(unsafe.Pointer(&img.envv[0])),
			unix.AT_EMPTY_PATH, 0)

		return err
	case execAt:
		_, _, err := unix.RawSyscall6(unix.SYS_EXECVEAT,
			uintptr(img.dirfd),
			uintptr(unsafe.Pointer(img.path)),
			uintptr(unsafe.Pointer(&img.argv[0])),
			uintptr(unsafe.Pointer(&img.envv[0])),
			uintptr(img.flags), 0)

		return err
	default:
		_, _, err := unix.RawSyscall(unix.SYS_EXECVE,
			uintptr(unsafe.Pointer(img.path)),
			uintptr(unsafe.Pointer(&img.argv[0])),
			uintptr(unsafe.Pointer(&img.envv[0])))

		return err
	}
}

package unistd

import (
	"unsafe"

	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// Fexecve executes the program open at f. It returns only on failure.
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
	if img.mode == execFD {
		_, _, err := unix.RawSyscall(unix.SYS_FEXECVE,
			uintptr(img.dirfd),
			uintptr(unsafe.Pointer(&img.argv[0])),
			uintptr(unsafe.Pointer(&img.envv[0])))

		return err
	}

	_, _, err := unix.RawSyscall(unix.SYS_EXECVE,
		uintptr(unsafe.Pointer(img.path)),
		uintptr(unsafe.Pointer(&img.argv[0])),
		uintptr(unsafe.Pointer(&img.envv[0])))

	return err
}

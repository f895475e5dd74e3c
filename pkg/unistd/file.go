package unistd

import (
	"fmt"

	"github.com/calvinalkan/posix/pkg/bitflags"
	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/stat"

	"golang.org/x/sys/unix"
)

// Close closes a borrowed descriptor. Prefer [fd.Owned.Close] for
// descriptors you own.
func Close(f fd.FD) error { return unix.Close(f.Raw()) }

// Dup returns a new descriptor for the same open file as f.
func Dup(f fd.FD) (*fd.Owned, error) {
	n, err := unix.Dup(f.Raw())
	if err != nil {
		return nil, err
	}

	return fd.Own(fd.FD(n)), nil
}

// Dup2 makes to refer to the same open file as from, closing to first if it
// was open. The new descriptor does not have FD_CLOEXEC set.
func Dup2(from, to fd.FD) error {
	return unix.Dup2(from.Raw(), to.Raw())
}

// Read reads up to len(p) bytes from f.
func Read(f fd.FD, p []byte) (int, error) { return unix.Read(f.Raw(), p) }

// Write writes p to f and returns how much was written.
func Write(f fd.FD, p []byte) (int, error) { return unix.Write(f.Raw(), p) }

// Pipe creates a pipe and returns its read and write ends. Neither end has
// FD_CLOEXEC set; use [Pipe2] where available to set it atomically.
func Pipe() (r, w *fd.Owned, err error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, nil, err
	}

	return fd.Own(fd.FD(p[0])), fd.Own(fd.FD(p[1])), nil
}

// Mkdir creates a directory.
func Mkdir(path string, mode stat.Mode) error {
	if err := stat.CheckMode("mkdir", mode); err != nil {
		return err
	}

	return unix.Mkdir(path, uint32(mode))
}

// Mkdirat creates a directory relative to dirfd. Absolute paths ignore dirfd.
func Mkdirat(dirfd fd.FD, path string, mode stat.Mode) error {
	if err := stat.CheckMode("mkdirat", mode); err != nil {
		return err
	}

	return unix.Mkdirat(dirfd.Raw(), path, uint32(mode))
}

// Mkfifo creates a named pipe. It fails with EEXIST when path exists,
// including when path is a directory.
func Mkfifo(path string, mode stat.Mode) error {
	if err := stat.CheckMode("mkfifo", mode); err != nil {
		return err
	}

	return unix.Mkfifo(path, uint32(mode))
}

// Link creates newpath as a hard link to oldpath.
func Link(oldpath, newpath string) error { return unix.Link(oldpath, newpath) }

// Linkat creates a hard link with both paths resolved relative to their
// directory descriptors. Accepted flags: AT_SYMLINK_FOLLOW (and AT_EMPTY_PATH
// on Linux).
func Linkat(olddirfd fd.FD, oldpath string, newdirfd fd.FD, newpath string, flags fcntl.AtFlags) error {
	if err := fcntl.CheckAt("linkat", flags, linkatFlags); err != nil {
		return err
	}

	return unix.Linkat(olddirfd.Raw(), oldpath, newdirfd.Raw(), newpath, int(flags))
}

// Unlink removes a name from the filesystem.
func Unlink(path string) error { return unix.Unlink(path) }

// Unlinkat removes path relative to dirfd. With AT_REMOVEDIR it removes an
// empty directory instead of a file.
func Unlinkat(dirfd fd.FD, path string, flags fcntl.AtFlags) error {
	if err := fcntl.CheckAt("unlinkat", flags, fcntl.AT_REMOVEDIR); err != nil {
		return err
	}

	return unix.Unlinkat(dirfd.Raw(), path, int(flags))
}

// AccessMode is the mode set of access(2): F_OK or any of R_OK, W_OK, X_OK.
type AccessMode uint32

const (
	F_OK AccessMode = unix.F_OK
	R_OK AccessMode = unix.R_OK
	W_OK AccessMode = unix.W_OK
	X_OK AccessMode = unix.X_OK
)

var accessModeTable = bitflags.New("AccessMode",
	bitflags.Flag[AccessMode]{Name: "F_OK", Value: F_OK},
	bitflags.Flag[AccessMode]{Name: "R_OK", Value: R_OK},
	bitflags.Flag[AccessMode]{Name: "W_OK", Value: W_OK},
	bitflags.Flag[AccessMode]{Name: "X_OK", Value: X_OK},
)

// AccessModeTable returns the flag table of [AccessMode].
func AccessModeTable() *bitflags.Table[AccessMode] { return accessModeTable }

// AccessModeFromBits validates bits as an access mode.
func AccessModeFromBits(bits uint32) (AccessMode, error) {
	return accessModeTable.FromBits(AccessMode(bits))
}

// AccessModeFromBitsTruncate drops undefined bits.
func AccessModeFromBitsTruncate(bits uint32) AccessMode {
	return accessModeTable.Truncate(AccessMode(bits))
}

func (m AccessMode) Bits() uint32 { return uint32(m) }

func (m AccessMode) Contains(other AccessMode) bool { return bitflags.Contains(m, other) }

func (m AccessMode) String() string { return accessModeTable.Format(m) }

func checkAccess(op string, mode AccessMode) error {
	if _, err := accessModeTable.FromBits(mode); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Access checks the real user's permissions for path.
func Access(path string, mode AccessMode) error {
	if err := checkAccess("access", mode); err != nil {
		return err
	}

	return unix.Access(path, uint32(mode))
}

// Faccessat checks permissions for path relative to dirfd. Accepted flags:
// AT_EACCESS (check with the effective ids) and AT_SYMLINK_NOFOLLOW.
func Faccessat(dirfd fd.FD, path string, mode AccessMode, flags fcntl.AtFlags) error {
	if err := fcntl.CheckAt("faccessat", flags, fcntl.AT_EACCESS|fcntl.AT_SYMLINK_NOFOLLOW); err != nil {
		return err
	}

	if err := checkAccess("faccessat", mode); err != nil {
		return err
	}

	return unix.Faccessat(dirfd.Raw(), path, uint32(mode), int(flags))
}

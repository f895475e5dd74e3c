// Package fcntl wraps open(2), fcntl(2) and flock(2) with typed flag sets.
//
// Descriptor-creating calls return *fd.Owned; everything else borrows an
// [fd.FD]. Errors are the bare errno the kernel reported (see package errno).
package fcntl

import (
	"fmt"

	"github.com/calvinalkan/posix/pkg/bitflags"
	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/stat"

	"golang.org/x/sys/unix"
)

// FdFlag is the descriptor flag set of F_GETFD/F_SETFD.
type FdFlag int

// FD_CLOEXEC closes the descriptor on a successful exec.
const FD_CLOEXEC FdFlag = unix.FD_CLOEXEC

var fdFlagTable = bitflags.New("FdFlag",
	bitflags.Flag[FdFlag]{Name: "FD_CLOEXEC", Value: FD_CLOEXEC},
)

// FdFlagTable returns the flag table of [FdFlag].
func FdFlagTable() *bitflags.Table[FdFlag] { return fdFlagTable }

// FdFlagFromBits validates bits against the defined descriptor flags.
func FdFlagFromBits(bits int) (FdFlag, error) { return fdFlagTable.FromBits(FdFlag(bits)) }

// FdFlagFromBitsTruncate drops undefined bits.
func FdFlagFromBitsTruncate(bits int) FdFlag { return fdFlagTable.Truncate(FdFlag(bits)) }

func (f FdFlag) Bits() int { return int(f) }

func (f FdFlag) Contains(other FdFlag) bool { return bitflags.Contains(f, other) }

func (f FdFlag) String() string { return fdFlagTable.Format(f) }

// Open opens path and returns the new descriptor. mode is used only with
// O_CREAT (or O_TMPFILE on Linux).
func Open(path string, flags OFlag, mode stat.Mode) (*fd.Owned, error) {
	if err := checkOpen("open", flags, mode); err != nil {
		return nil, err
	}

	n, err := unix.Open(path, int(flags), uint32(mode))
	if err != nil {
		return nil, err
	}

	return fd.Own(fd.FD(n)), nil
}

// Openat opens path relative to dirfd. Absolute paths ignore dirfd; [fd.CWD]
// resolves relative paths against the working directory.
func Openat(dirfd fd.FD, path string, flags OFlag, mode stat.Mode) (*fd.Owned, error) {
	if err := checkOpen("openat", flags, mode); err != nil {
		return nil, err
	}

	n, err := unix.Openat(dirfd.Raw(), path, int(flags), uint32(mode))
	if err != nil {
		return nil, err
	}

	return fd.Own(fd.FD(n)), nil
}

func checkOpen(op string, flags OFlag, mode stat.Mode) error {
	if _, err := oflagTable.FromBits(flags); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return stat.CheckMode(op, mode)
}

// GetFD returns the descriptor flags (F_GETFD).
func GetFD(f fd.FD) (FdFlag, error) {
	v, err := unix.FcntlInt(uintptr(f), unix.F_GETFD, 0)
	if err != nil {
		return 0, err
	}

	return FdFlagFromBitsTruncate(v), nil
}

// SetFD replaces the descriptor flags (F_SETFD).
func SetFD(f fd.FD, flags FdFlag) error {
	_, err := unix.FcntlInt(uintptr(f), unix.F_SETFD, int(flags))
	return err
}

// SetCloexec sets or clears FD_CLOEXEC, keeping the other descriptor flags.
func SetCloexec(f fd.FD, on bool) error {
	cur, err := GetFD(f)
	if err != nil {
		return err
	}

	next := cur &^ FD_CLOEXEC
	if on {
		next |= FD_CLOEXEC
	}

	if next == cur {
		return nil
	}

	return SetFD(f, next)
}

// GetFL returns the file status flags and access mode (F_GETFL). Bits the
// kernel reports but the platform table does not name are kept.
func GetFL(f fd.FD) (OFlag, error) {
	v, err := unix.FcntlInt(uintptr(f), unix.F_GETFL, 0)
	if err != nil {
		return 0, err
	}

	return OFlag(v), nil
}

// SetFL replaces the file status flags (F_SETFL). The kernel ignores the
// access mode and creation flags.
func SetFL(f fd.FD, flags OFlag) error {
	_, err := unix.FcntlInt(uintptr(f), unix.F_SETFL, int(flags))
	return err
}

// SetNonblock sets or clears O_NONBLOCK.
func SetNonblock(f fd.FD, on bool) error {
	return unix.SetNonblock(f.Raw(), on)
}

// DupFD duplicates f onto the lowest free descriptor >= min. With cloexec
// the new descriptor has FD_CLOEXEC set atomically (F_DUPFD_CLOEXEC).
func DupFD(f fd.FD, min fd.FD, cloexec bool) (*fd.Owned, error) {
	cmd := unix.F_DUPFD
	if cloexec {
		cmd = unix.F_DUPFD_CLOEXEC
	}

	n, err := unix.FcntlInt(uintptr(f), cmd, min.Raw())
	if err != nil {
		return nil, err
	}

	return fd.Own(fd.FD(n)), nil
}

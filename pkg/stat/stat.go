// Package stat carries the file-mode pieces other wrappers need: the
// permission set [Mode], the file type [FileType], and the stat family.
//
// Field-by-field projections of the stat structure are out of scope; [Stat]
// returns the platform's [unix.Stat_t] as is.
package stat

import (
	"fmt"
	"strconv"

	"github.com/calvinalkan/posix/pkg/bitflags"
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// Mode is the permission part of a file mode (the bits below S_IFMT).
type Mode uint32

// Permission bits.
const (
	S_IRWXU Mode = unix.S_IRWXU
	S_IRUSR Mode = unix.S_IRUSR
	S_IWUSR Mode = unix.S_IWUSR
	S_IXUSR Mode = unix.S_IXUSR
	S_IRWXG Mode = unix.S_IRWXG
	S_IRGRP Mode = unix.S_IRGRP
	S_IWGRP Mode = unix.S_IWGRP
	S_IXGRP Mode = unix.S_IXGRP
	S_IRWXO Mode = unix.S_IRWXO
	S_IROTH Mode = unix.S_IROTH
	S_IWOTH Mode = unix.S_IWOTH
	S_IXOTH Mode = unix.S_IXOTH
	S_ISUID Mode = unix.S_ISUID
	S_ISGID Mode = unix.S_ISGID
	S_ISVTX Mode = unix.S_ISVTX
)

var modeTable = bitflags.New("Mode",
	bitflags.Flag[Mode]{Name: "S_IRWXU", Value: S_IRWXU},
	bitflags.Flag[Mode]{Name: "S_IRUSR", Value: S_IRUSR},
	bitflags.Flag[Mode]{Name: "S_IWUSR", Value: S_IWUSR},
	bitflags.Flag[Mode]{Name: "S_IXUSR", Value: S_IXUSR},
	bitflags.Flag[Mode]{Name: "S_IRWXG", Value: S_IRWXG},
	bitflags.Flag[Mode]{Name: "S_IRGRP", Value: S_IRGRP},
	bitflags.Flag[Mode]{Name: "S_IWGRP", Value: S_IWGRP},
	bitflags.Flag[Mode]{Name: "S_IXGRP", Value: S_IXGRP},
	bitflags.Flag[Mode]{Name: "S_IRWXO", Value: S_IRWXO},
	bitflags.Flag[Mode]{Name: "S_IROTH", Value: S_IROTH},
	bitflags.Flag[Mode]{Name: "S_IWOTH", Value: S_IWOTH},
	bitflags.Flag[Mode]{Name: "S_IXOTH", Value: S_IXOTH},
	bitflags.Flag[Mode]{Name: "S_ISUID", Value: S_ISUID},
	bitflags.Flag[Mode]{Name: "S_ISGID", Value: S_ISGID},
	bitflags.Flag[Mode]{Name: "S_ISVTX", Value: S_ISVTX},
)

// ModeTable returns the flag table of [Mode].
func ModeTable() *bitflags.Table[Mode] { return modeTable }

// ModeFromBits validates bits as a permission set.
func ModeFromBits(bits uint32) (Mode, error) { return modeTable.FromBits(Mode(bits)) }

// ModeFromBitsTruncate keeps only permission bits, dropping file type bits.
func ModeFromBitsTruncate(bits uint32) Mode { return modeTable.Truncate(Mode(bits)) }

// CheckMode returns an error wrapping [bitflags.ErrUnknownBits] when m has
// bits outside the permission set. op names the call in the message.
func CheckMode(op string, m Mode) error {
	if _, err := modeTable.FromBits(m); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m Mode) Bits() uint32 { return uint32(m) }

func (m Mode) Contains(other Mode) bool { return bitflags.Contains(m, other) }

func (m Mode) Intersects(other Mode) bool { return bitflags.Intersects(m, other) }

func (m Mode) String() string { return modeTable.Format(m) }

// FileType is the S_IFMT part of a file mode. Unlike a flag set, exactly one
// type applies to a file.
type FileType uint32

// File types.
const (
	S_IFIFO  FileType = unix.S_IFIFO
	S_IFCHR  FileType = unix.S_IFCHR
	S_IFDIR  FileType = unix.S_IFDIR
	S_IFBLK  FileType = unix.S_IFBLK
	S_IFREG  FileType = unix.S_IFREG
	S_IFLNK  FileType = unix.S_IFLNK
	S_IFSOCK FileType = unix.S_IFSOCK

	S_IFMT FileType = unix.S_IFMT
)

var fileTypeNames = map[FileType]string{
	S_IFIFO:  "S_IFIFO",
	S_IFCHR:  "S_IFCHR",
	S_IFDIR:  "S_IFDIR",
	S_IFBLK:  "S_IFBLK",
	S_IFREG:  "S_IFREG",
	S_IFLNK:  "S_IFLNK",
	S_IFSOCK: "S_IFSOCK",
}

// TypeOf extracts the file type from a raw st_mode value.
func TypeOf(rawMode uint32) FileType { return FileType(rawMode) & S_IFMT }

// PermOf extracts the permission set from a raw st_mode value.
func PermOf(rawMode uint32) Mode { return ModeFromBitsTruncate(rawMode) }

func (t FileType) String() string {
	if name, ok := fileTypeNames[t]; ok {
		return name
	}

	return "S_IFMT(0x" + strconv.FormatUint(uint64(t), 16) + ")"
}

// FileStat is the platform's stat structure.
type FileStat = unix.Stat_t

// Stat follows symlinks.
func Stat(path string) (FileStat, error) {
	var st FileStat

	err := unix.Stat(path, &st)

	return st, err
}

// Lstat does not follow a trailing symlink.
func Lstat(path string) (FileStat, error) {
	var st FileStat

	err := unix.Lstat(path, &st)

	return st, err
}

// Fstat stats an open descriptor.
func Fstat(f fd.FD) (FileStat, error) {
	var st FileStat

	err := unix.Fstat(f.Raw(), &st)

	return st, err
}

// Type returns the file type of st.
func Type(st *FileStat) FileType { return TypeOf(uint32(st.Mode)) }

// Perm returns the permission set of st.
func Perm(st *FileStat) Mode { return PermOf(uint32(st.Mode)) }

// Umask sets the process file mode creation mask and returns the previous one.
// It cannot fail.
func Umask(mask Mode) Mode {
	return Mode(unix.Umask(int(mask)))
}

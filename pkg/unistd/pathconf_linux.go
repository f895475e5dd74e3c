package unistd

import (
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// glibc's _PC_* numbering.
const (
	PC_LINK_MAX PathconfVar = iota
	PC_MAX_CANON
	PC_MAX_INPUT
	PC_NAME_MAX
	PC_PATH_MAX
	PC_PIPE_BUF
	PC_CHOWN_RESTRICTED
	PC_NO_TRUNC
	PC_VDISABLE
)

const (
	linuxLinkMax = 127
	linuxPipeBuf = 4096
	ttyMaxCanon  = 255
)

// Pathconf returns a limit of the file system holding path. Linux has no
// pathconf system call; like glibc, the values are derived from statfs(2)
// and the kernel's fixed limits. limited is false when there is no limit.
func Pathconf(path string, name PathconfVar) (value int64, limited bool, err error) {
	if err := checkPathconf("pathconf", name); err != nil {
		return 0, false, err
	}

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, false, err
	}

	v, limited := statfsLimit(&st, name)

	return v, limited, nil
}

// Fpathconf is [Pathconf] for an open descriptor.
func Fpathconf(f fd.FD, name PathconfVar) (value int64, limited bool, err error) {
	if err := checkPathconf("fpathconf", name); err != nil {
		return 0, false, err
	}

	var st unix.Statfs_t
	if err := unix.Fstatfs(f.Raw(), &st); err != nil {
		return 0, false, err
	}

	v, limited := statfsLimit(&st, name)

	return v, limited, nil
}

func statfsLimit(st *unix.Statfs_t, name PathconfVar) (int64, bool) {
	switch name {
	case PC_LINK_MAX:
		return linkMax(st), true
	case PC_MAX_CANON, PC_MAX_INPUT:
		return ttyMaxCanon, true
	case PC_NAME_MAX:
		return int64(st.Namelen), true
	case PC_PATH_MAX:
		return unix.PathMax, true
	case PC_PIPE_BUF:
		return linuxPipeBuf, true
	case PC_CHOWN_RESTRICTED, PC_NO_TRUNC:
		return 1, true
	case PC_VDISABLE:
		return 0, true
	}

	return 0, false
}

// linkMax maps the file system magic to its hard link limit.
func linkMax(st *unix.Statfs_t) int64 {
	switch uint32(st.Type) {
	case unix.EXT4_SUPER_MAGIC:
		return 65000
	case unix.BTRFS_SUPER_MAGIC:
		return 65535
	case unix.XFS_SUPER_MAGIC:
		return 2147483647
	}

	return linuxLinkMax
}

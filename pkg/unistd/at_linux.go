package unistd

import (
	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/stat"

	"golang.org/x/sys/unix"
)

const linkatFlags = fcntl.AT_SYMLINK_FOLLOW | fcntl.AT_EMPTY_PATH

// Mkfifoat creates a named pipe relative to dirfd.
func Mkfifoat(dirfd fd.FD, path string, mode stat.Mode) error {
	if err := stat.CheckMode("mkfifoat", mode); err != nil {
		return err
	}

	return unix.Mkfifoat(dirfd.Raw(), path, uint32(mode))
}

//go:build netbsd || openbsd

package unistd

import (
	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/stat"

	"golang.org/x/sys/unix"
)

// Mkfifoat creates a named pipe relative to dirfd.
func Mkfifoat(dirfd fd.FD, path string, mode stat.Mode) error {
	if err := stat.CheckMode("mkfifoat", mode); err != nil {
		return err
	}

	return unix.Mkfifoat(dirfd.Raw(), path, uint32(mode))
}

package fcntl

import (
	"github.com/calvinalkan/posix/pkg/bitflags"

	"golang.org/x/sys/unix"
)

const (
	// AT_EMPTY_PATH operates on the directory descriptor itself when the
	// path is empty.
	AT_EMPTY_PATH   AtFlags = unix.AT_EMPTY_PATH
	AT_NO_AUTOMOUNT AtFlags = unix.AT_NO_AUTOMOUNT
)

// AT_REMOVEDIR and AT_EACCESS share a bit on Linux; formatting prints
// AT_REMOVEDIR.
var atFlagsList = []bitflags.Flag[AtFlags]{
	{Name: "AT_SYMLINK_NOFOLLOW", Value: AT_SYMLINK_NOFOLLOW},
	{Name: "AT_REMOVEDIR", Value: AT_REMOVEDIR},
	{Name: "AT_EACCESS", Value: AT_EACCESS},
	{Name: "AT_SYMLINK_FOLLOW", Value: AT_SYMLINK_FOLLOW},
	{Name: "AT_NO_AUTOMOUNT", Value: AT_NO_AUTOMOUNT},
	{Name: "AT_EMPTY_PATH", Value: AT_EMPTY_PATH},
}

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package fcntl

import "github.com/calvinalkan/posix/pkg/bitflags"

var atFlagsList = []bitflags.Flag[AtFlags]{
	{Name: "AT_SYMLINK_NOFOLLOW", Value: AT_SYMLINK_NOFOLLOW},
	{Name: "AT_REMOVEDIR", Value: AT_REMOVEDIR},
	{Name: "AT_EACCESS", Value: AT_EACCESS},
	{Name: "AT_SYMLINK_FOLLOW", Value: AT_SYMLINK_FOLLOW},
}

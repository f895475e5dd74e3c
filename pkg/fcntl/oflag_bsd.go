//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package fcntl

import (
	"github.com/calvinalkan/posix/pkg/bitflags"

	"golang.org/x/sys/unix"
)

// BSD open(2) can take a flock(2) lock atomically with the open.
const (
	O_SHLOCK OFlag = unix.O_SHLOCK
	O_EXLOCK OFlag = unix.O_EXLOCK
)

var oflagList = []bitflags.Flag[OFlag]{
	{Name: "O_RDONLY", Value: O_RDONLY},
	{Name: "O_WRONLY", Value: O_WRONLY},
	{Name: "O_RDWR", Value: O_RDWR},
	{Name: "O_APPEND", Value: O_APPEND},
	{Name: "O_CREAT", Value: O_CREAT},
	{Name: "O_EXCL", Value: O_EXCL},
	{Name: "O_NOCTTY", Value: O_NOCTTY},
	{Name: "O_NONBLOCK", Value: O_NONBLOCK},
	{Name: "O_SYNC", Value: O_SYNC},
	{Name: "O_TRUNC", Value: O_TRUNC},
	{Name: "O_CLOEXEC", Value: O_CLOEXEC},
	{Name: "O_DIRECTORY", Value: O_DIRECTORY},
	{Name: "O_NOFOLLOW", Value: O_NOFOLLOW},
	{Name: "O_ASYNC", Value: O_ASYNC},
	{Name: "O_SHLOCK", Value: O_SHLOCK},
	{Name: "O_EXLOCK", Value: O_EXLOCK},
}

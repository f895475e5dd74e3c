package fcntl

import (
	"github.com/calvinalkan/posix/pkg/bitflags"

	"golang.org/x/sys/unix"
)

const (
	O_DSYNC     OFlag = unix.O_DSYNC
	O_DIRECT    OFlag = unix.O_DIRECT
	O_NOATIME   OFlag = unix.O_NOATIME
	O_PATH      OFlag = unix.O_PATH
	O_TMPFILE   OFlag = unix.O_TMPFILE
	O_LARGEFILE OFlag = unix.O_LARGEFILE
)

// O_TMPFILE includes O_DIRECTORY and O_SYNC includes O_DSYNC, so both are
// listed before the bits they contain.
var oflagList = []bitflags.Flag[OFlag]{
	{Name: "O_RDONLY", Value: O_RDONLY},
	{Name: "O_WRONLY", Value: O_WRONLY},
	{Name: "O_RDWR", Value: O_RDWR},
	{Name: "O_TMPFILE", Value: O_TMPFILE},
	{Name: "O_SYNC", Value: O_SYNC},
	{Name: "O_APPEND", Value: O_APPEND},
	{Name: "O_CREAT", Value: O_CREAT},
	{Name: "O_EXCL", Value: O_EXCL},
	{Name: "O_NOCTTY", Value: O_NOCTTY},
	{Name: "O_NONBLOCK", Value: O_NONBLOCK},
	{Name: "O_TRUNC", Value: O_TRUNC},
	{Name: "O_CLOEXEC", Value: O_CLOEXEC},
	{Name: "O_DIRECTORY", Value: O_DIRECTORY},
	{Name: "O_NOFOLLOW", Value: O_NOFOLLOW},
	{Name: "O_ASYNC", Value: O_ASYNC},
	{Name: "O_DSYNC", Value: O_DSYNC},
	{Name: "O_DIRECT", Value: O_DIRECT},
	{Name: "O_NOATIME", Value: O_NOATIME},
	{Name: "O_PATH", Value: O_PATH},
	{Name: "O_LARGEFILE", Value: O_LARGEFILE},
}

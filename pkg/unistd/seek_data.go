//go:build linux || darwin || freebsd

package unistd

import "golang.org/x/sys/unix"

const (
	// SeekData moves to the next region containing data at or after offset.
	SeekData Whence = unix.SEEK_DATA
	// SeekHole moves to the next hole at or after offset.
	SeekHole Whence = unix.SEEK_HOLE
)

func init() {
	whenceNames[SeekData] = "SEEK_DATA"
	whenceNames[SeekHole] = "SEEK_HOLE"
}

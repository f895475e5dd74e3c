package unistd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// Whence is the origin of an [Lseek].
type Whence int

const (
	SeekSet Whence = io.SeekStart
	SeekCur Whence = io.SeekCurrent
	SeekEnd Whence = io.SeekEnd
)

var whenceNames = map[Whence]string{
	SeekSet: "SEEK_SET",
	SeekCur: "SEEK_CUR",
	SeekEnd: "SEEK_END",
}

func (w Whence) String() string {
	if name, ok := whenceNames[w]; ok {
		return name
	}

	return "Whence(" + strconv.Itoa(int(w)) + ")"
}

// Lseek repositions the offset of f and returns the new offset from the start
// of the file. Seeking a pipe, FIFO or socket fails with ESPIPE.
func Lseek(f fd.FD, offset int64, whence Whence) (int64, error) {
	if _, ok := whenceNames[whence]; !ok {
		return 0, fmt.Errorf("%w: lseek whence %d", errno.ErrInvalidInput, int(whence))
	}

	return unix.Seek(f.Raw(), offset, int(whence))
}

package unistd

import (
	"github.com/calvinalkan/posix/pkg/fd"
)

// Lseek64 is [Lseek] with a 64-bit offset on every Linux architecture. On
// 32-bit architectures the call goes through _llseek.
func Lseek64(f fd.FD, offset int64, whence Whence) (int64, error) {
	return Lseek(f, offset, whence)
}

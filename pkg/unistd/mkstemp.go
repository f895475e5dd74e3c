package unistd

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/fd"
)

const (
	mkstempSuffix   = "XXXXXX"
	mkstempAttempts = 238328 // 62^3, as glibc
	mkstempChars    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Mkstemp creates a unique file from template, whose last six characters must
// be "XXXXXX", and returns the open descriptor and the path created. The file
// is created with mode 0600 and opened O_RDWR|O_CLOEXEC.
//
// A template without the suffix (for example a directory path) fails with
// EINVAL before anything is created.
func Mkstemp(template string) (*fd.Owned, string, error) {
	if !strings.HasSuffix(template, mkstempSuffix) {
		return nil, "", errno.EINVAL
	}

	if strings.IndexByte(template, 0) >= 0 {
		return nil, "", fmt.Errorf("%w: mkstemp template contains NUL", errno.ErrInvalidInput)
	}

	prefix := template[:len(template)-len(mkstempSuffix)]
	buf := make([]byte, len(mkstempSuffix))

	var err error
	for range mkstempAttempts {
		for i := range buf {
			buf[i] = mkstempChars[rand.IntN(len(mkstempChars))]
		}

		path := prefix + string(buf)

		var f *fd.Owned

		f, err = fcntl.Open(path, fcntl.O_RDWR|fcntl.O_CREAT|fcntl.O_EXCL|fcntl.O_CLOEXEC, 0o600)
		if err == nil {
			return f, path, nil
		}

		if err != errno.EEXIST {
			return nil, "", err
		}
	}

	return nil, "", err
}

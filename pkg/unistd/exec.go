package unistd

import (
	"os"
	"strings"

	"github.com/calvinalkan/posix/pkg/errno"

	"golang.org/x/sys/unix"
)

// Execve replaces the process image with the program at path, passing argv
// and the environment envv ("KEY=value" entries).
//
// On success Execve does not return. On failure the process image is intact
// and the errno is returned: ENOENT, EACCES, ENOEXEC and so on. Arguments
// containing a NUL byte fail with EINVAL without calling the kernel.
func Execve(path string, argv, envv []string) error {
	return unix.Exec(path, argv, envv)
}

// Execv is [Execve] with the current environment.
func Execv(path string, argv []string) error {
	return unix.Exec(path, argv, os.Environ())
}

// Execvp is [Execvpe] with the current environment.
func Execvp(file string, argv []string) error {
	return Execvpe(file, argv, os.Environ())
}

// Execvpe searches PATH for file the way execvp(3) does and execs the first
// match with envv. A file containing a slash is executed directly.
//
// PATH is read from the calling process's environment, not from envv. When no
// candidate could be executed, the result is EACCES if some candidate was not
// executable, else ENOENT.
func Execvpe(file string, argv, envv []string) error {
	if file == "" {
		return errno.ENOENT
	}

	if strings.Contains(file, "/") {
		return unix.Exec(file, argv, envv)
	}

	path, ok := os.LookupEnv("PATH")
	if !ok {
		path = "/bin:/usr/bin"
	}

	sawEACCES := false

	for dir := range strings.SplitSeq(path, ":") {
		if dir == "" {
			dir = "."
		}

		err := unix.Exec(dir+"/"+file, argv, envv)

		code, _ := errno.From(err)
		switch code {
		case errno.EACCES:
			sawEACCES = true
		case errno.ENOENT, errno.ENOTDIR, unix.ENODEV, unix.ETIMEDOUT, unix.ESTALE:
		default:
			return err
		}
	}

	if sawEACCES {
		return errno.EACCES
	}

	return errno.ENOENT
}

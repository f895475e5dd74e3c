//go:build linux || freebsd

package unistd

import (
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

type execMode int

const (
	execPath execMode = iota + 1
	execFD
	execAt
)

type redirect struct {
	from, to int
}

// ExecImage is a program ready to be executed without further allocation:
// path, argument and environment strings are converted to NUL-terminated C
// arrays when the image is prepared. That makes [ExecImage.Exec] usable in a
// forked child (see [Fork]).
//
// An image may be executed any number of times; it is not modified by Exec.
type ExecImage struct {
	mode    execMode
	path    *byte
	dirfd   int
	flags   int
	argv    []*byte
	envv    []*byte
	actions []redirect
}

// PrepareExecve prepares an execve(2) of the program at path.
func PrepareExecve(path string, argv, envv []string) (*ExecImage, error) {
	p, err := unix.BytePtrFromString(path)
	if err != nil {
		return nil, err
	}

	return newImage(execPath, p, -1, 0, argv, envv)
}

// PrepareFexecve prepares an fexecve(3) of the program open at f.
func PrepareFexecve(f fd.FD, argv, envv []string) (*ExecImage, error) {
	p, err := unix.BytePtrFromString("")
	if err != nil {
		return nil, err
	}

	return newImage(execFD, p, f.Raw(), 0, argv, envv)
}

func newImage(mode execMode, path *byte, dirfd, flags int, argv, envv []string) (*ExecImage, error) {
	argvp, err := cStrings(argv)
	if err != nil {
		return nil, err
	}

	envvp, err := cStrings(envv)
	if err != nil {
		return nil, err
	}

	return &ExecImage{
		mode:  mode,
		path:  path,
		dirfd: dirfd,
		flags: flags,
		argv:  argvp,
		envv:  envvp,
	}, nil
}

// cStrings converts ss to a nil-terminated array of C strings.
func cStrings(ss []string) ([]*byte, error) {
	out := make([]*byte, len(ss)+1)

	for i, s := range ss {
		p, err := unix.BytePtrFromString(s)
		if err != nil {
			return nil, err
		}

		out[i] = p
	}

	return out, nil
}

// Redirect makes descriptor to refer to from in the new program, like
// dup2(from, to) right before the exec. Redirecting a descriptor to itself
// clears its FD_CLOEXEC flag so it survives the exec. Redirects run in the
// order they were added.
func (img *ExecImage) Redirect(from, to fd.FD) *ExecImage {
	img.actions = append(img.actions, redirect{from: from.Raw(), to: to.Raw()})
	return img
}

// Exec applies the redirects and replaces the process image. It returns only
// on failure, with the errno of the failing step.
func (img *ExecImage) Exec() error {
	return img.exec()
}

// ExecOrExit is [ExecImage.Exec] followed by [Exit](code) when the exec
// failed. It is the only way to exec on the child side of [Fork].
//
//go:norace
//go:nosplit
func (img *ExecImage) ExecOrExit(code int) {
	_ = img.exec()

	Exit(code)
}

// exec runs in a forked child: it must not grow the stack or allocate.
//
//go:norace
//go:nosplit
func (img *ExecImage) exec() unix.Errno {
	for i := 0; i < len(img.actions); i++ {
		if err := rawDup2(img.actions[i].from, img.actions[i].to); err != 0 {
			return err
		}
	}

	return img.rawExec()
}

//go:build linux || freebsd

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/unistd"
	"github.com/calvinalkan/posix/pkg/unistd/alarm"
	"github.com/calvinalkan/posix/pkg/wait"
)

// runChild spawns spec.argv with stdout and stderr connected to o, waits for
// it and returns its status. Signals from spec.sigCh are forwarded to the
// child; when spec.timeout elapses the child receives spec.kill.
func runChild(o *IO, spec childSpec) (childResult, error) {
	if len(spec.argv) == 0 {
		return childResult{}, ErrProgramRequired
	}

	path, err := lookPath(spec.argv[0], spec.env["PATH"], spec.dir)
	if err != nil {
		return childResult{}, err
	}

	img, err := unistd.PrepareExecve(path, spec.argv, environ(spec.env))
	if err != nil {
		return childResult{}, fmt.Errorf("preparing %s: %w", path, err)
	}

	stdout, err := attach(img, o.out, fd.Stdout)
	if err != nil {
		return childResult{}, err
	}
	defer stdout.abort()

	stderr, err := attach(img, o.errOut, fd.Stderr)
	if err != nil {
		return childResult{}, err
	}
	defer stderr.abort()

	pid, err := spawnIn(img, spec.dir)
	if err != nil {
		return childResult{}, fmt.Errorf("spawning %s: %w", path, err)
	}

	stdout.started()
	stderr.started()

	o.Debugf("spawned %s as pid %d", path, pid)

	var timedOut atomic.Bool

	if spec.timeout > 0 {
		restore, err := armTimeout(pid, spec.timeout, spec.kill, &timedOut)
		if err != nil {
			_ = signal.Kill(pid, signal.SIGKILL)
			_, _ = wait.Waitpid(pid, 0)

			return childResult{}, err
		}
		defer restore()
	}

	done := make(chan struct{})
	defer close(done)

	go forward(pid, spec.sigCh, done, o)

	status, err := errno.RetryEINTRValue(func() (wait.Status, error) {
		return wait.Waitpid(pid, 0)
	})
	if err != nil {
		return childResult{}, fmt.Errorf("waiting for pid %d: %w", pid, err)
	}

	copyErr := errors.Join(stdout.wait(), stderr.wait())
	if copyErr != nil {
		return childResult{}, copyErr
	}

	return childResult{pid: pid, status: status, timedOut: timedOut.Load()}, nil
}

// cwdMu serializes the chdir/fork/fchdir sequence in spawnIn.
var cwdMu sync.Mutex

// spawnIn spawns img with dir as working directory. The working directory is
// process-wide, so it is switched around the fork and restored afterwards.
func spawnIn(img *unistd.ExecImage, dir string) (unistd.Pid, error) {
	if dir == "" {
		return unistd.Spawn(img)
	}

	cwdMu.Lock()
	defer cwdMu.Unlock()

	cwd, err := fcntl.Open(".", fcntl.O_RDONLY|fcntl.O_DIRECTORY|fcntl.O_CLOEXEC, 0)
	if err != nil {
		return 0, err
	}
	defer cwd.Close()

	if err := unistd.Chdir(dir); err != nil {
		return 0, err
	}

	pid, spawnErr := unistd.Spawn(img)

	if err := unistd.Fchdir(cwd.FD()); err != nil {
		return pid, errors.Join(spawnErr, err)
	}

	return pid, spawnErr
}

// armTimeout schedules kill for pid after secs seconds using the process
// alarm. The returned func cancels the alarm and restores SIGALRM.
func armTimeout(pid unistd.Pid, secs uint, kill signal.Signal, timedOut *atomic.Bool) (func(), error) {
	prev, err := signal.Sigaction(signal.SIGALRM, signal.SigAction{
		Handler: signal.Handler(func(signal.Signal) {
			timedOut.Store(true)
			_ = signal.Kill(pid, kill)
		}),
		Flags: signal.SA_RESTART,
	})
	if err != nil {
		return nil, fmt.Errorf("installing SIGALRM handler: %w", err)
	}

	if _, _, err := alarm.Set(secs); err != nil {
		_, _ = signal.Sigaction(signal.SIGALRM, prev)
		return nil, fmt.Errorf("setting alarm: %w", err)
	}

	return func() {
		_, _, _ = alarm.Cancel()
		_, _ = signal.Sigaction(signal.SIGALRM, prev)
	}, nil
}

// forward relays signals received by posixctl to the child until done.
func forward(pid unistd.Pid, sigCh <-chan os.Signal, done <-chan struct{}, o *IO) {
	if sigCh == nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case s, open := <-sigCh:
			if !open {
				return
			}

			raw, ok := s.(syscall.Signal)
			if !ok {
				continue
			}

			sig := signal.Signal(raw)
			if err := signal.Kill(pid, sig); err != nil {
				o.Debugf("forwarding %s to pid %d: %v", sig, pid, err)
			}
		}
	}
}

// stdio connects one child descriptor to a writer. Writers backed by an
// *os.File are handed to the child directly; anything else is fed through a
// pipe.
type stdio struct {
	w    *fd.Owned
	done chan error
}

func attach(img *unistd.ExecImage, w io.Writer, target fd.FD) (*stdio, error) {
	if f, ok := w.(*os.File); ok {
		img.Redirect(fd.FromRaw(int(f.Fd())), target)
		return &stdio{}, nil
	}

	r, pw, err := unistd.Pipe2(fcntl.O_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("creating pipe for %s: %w", target, err)
	}

	file, err := r.File("child " + target.String())
	if err != nil {
		_ = pw.Close()
		return nil, err
	}

	s := &stdio{w: pw, done: make(chan error, 1)}

	go func() {
		_, copyErr := io.Copy(w, file)
		s.done <- errors.Join(copyErr, file.Close())
	}()

	img.Redirect(pw.FD(), target)

	return s, nil
}

// started closes the parent's copy of the write end once the child holds it.
func (s *stdio) started() {
	if s.w != nil {
		_ = s.w.Close()
	}
}

// abort closes the write end if the child never started, which ends the copy.
func (s *stdio) abort() { s.started() }

func (s *stdio) wait() error {
	if s.done == nil {
		return nil
	}

	return <-s.done
}

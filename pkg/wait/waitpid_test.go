//go:build linux || freebsd

package wait_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/unistd"
	"github.com/calvinalkan/posix/pkg/wait"
)

// spawnSleeper starts a child that sleeps long enough for the test to
// observe it, and kills it on cleanup if the test did not reap it.
func spawnSleeper(t *testing.T) unistd.Pid {
	t.Helper()

	img, err := unistd.PrepareExecve("/bin/sh", []string{"sh", "-c", "sleep 30"}, nil)
	require.NoError(t, err)

	pid, err := unistd.Spawn(img)
	require.NoError(t, err)

	t.Cleanup(func() {
		if signal.Kill(pid, signal.SIGKILL) == nil {
			_, _ = wait.Waitpid(pid, 0)
		}
	})

	return pid
}

// waitChange polls pid with WNOHANG until it reports something other than
// StillAlive.
func waitChange(t *testing.T, pid unistd.Pid, flags wait.Flags) wait.Status {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		status, err := errno.RetryEINTRValue(func() (wait.Status, error) {
			return wait.Waitpid(pid, flags|wait.WNOHANG)
		})
		require.NoError(t, err)

		if _, alive := status.(wait.StillAlive); !alive {
			return status
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("pid %d did not change state within 5s", pid)

	return nil
}

func Test_Waitpid_Reports_Each_State_Change_When_Child_Is_Stopped_Continued_And_Killed(t *testing.T) {
	pid := spawnSleeper(t)

	status, err := wait.Waitpid(pid, wait.WNOHANG)
	require.NoError(t, err)

	if diff := cmp.Diff(wait.Status(wait.StillAlive{}), status); diff != "" {
		t.Fatalf("Waitpid(%d, WNOHANG) mismatch (-want +got):\n%s", pid, diff)
	}

	require.NoError(t, signal.Kill(pid, signal.SIGSTOP))

	status = waitChange(t, pid, wait.WUNTRACED)
	if diff := cmp.Diff(wait.Status(wait.Stopped{PID: pid, Signal: signal.SIGSTOP}), status); diff != "" {
		t.Fatalf("after SIGSTOP mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, signal.Kill(pid, signal.SIGCONT))

	status = waitChange(t, pid, wait.WCONTINUED)
	if diff := cmp.Diff(wait.Status(wait.Continued{PID: pid}), status); diff != "" {
		t.Fatalf("after SIGCONT mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, signal.Kill(pid, signal.SIGKILL))

	status, err = errno.RetryEINTRValue(func() (wait.Status, error) {
		return wait.Waitpid(pid, 0)
	})
	require.NoError(t, err)

	if diff := cmp.Diff(wait.Status(wait.Signaled{PID: pid, Signal: signal.SIGKILL}), status); diff != "" {
		t.Fatalf("after SIGKILL mismatch (-want +got):\n%s", diff)
	}
}

func Test_Waitpid_Returns_ECHILD_When_Pid_Is_Not_A_Child(t *testing.T) {
	_, err := wait.Waitpid(1, wait.WNOHANG)
	require.ErrorIs(t, err, errno.ECHILD)
}

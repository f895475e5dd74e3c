//go:build linux || freebsd

package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/internal/cli"
	"github.com/calvinalkan/posix/pkg/fcntl"
)

func Test_Flock_Runs_Program_And_Creates_Lock_File_When_Free(t *testing.T) {
	c := cli.NewCLI(t)

	stdout := c.MustRun("flock", "locks/job.lock", "--", "echo", "locked")
	if got, want := stdout, "locked"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	_, err := os.Stat(filepath.Join(c.Dir, "locks", "job.lock"))
	require.NoError(t, err)

	// The lock is released once the program exits.
	held, err := fcntl.TryLockFile(filepath.Join(c.Dir, "locks", "job.lock"), false)
	require.NoError(t, err)
	require.NoError(t, held.Close())
}

func Test_Flock_Mirrors_Exit_Code_When_Program_Fails(t *testing.T) {
	c := cli.NewCLI(t)

	_, _, exitCode := c.Run("flock", "job.lock", "--", "sh", "-c", "exit 4")
	if got, want := exitCode, 4; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}
}

func Test_Flock_Fails_When_Lock_Held_And_Nonblock_Or_Timeout(t *testing.T) {
	c := cli.NewCLI(t)
	path := filepath.Join(c.Dir, "job.lock")

	held, err := fcntl.TryLockFile(path, false)
	require.NoError(t, err)

	defer held.Close()

	cli.AssertContains(t, c.MustFail("flock", "-n", "job.lock", "--", "true"), "lock would block")
	cli.AssertContains(t, c.MustFail("flock", "--timeout", "50ms", "job.lock", "--", "true"), "lock would block")
}

func Test_Flock_Fails_When_Arguments_Missing(t *testing.T) {
	c := cli.NewCLI(t)

	cli.AssertContains(t, c.MustFail("flock"), "path is required")
	cli.AssertContains(t, c.MustFail("flock", "job.lock"), "program is required")
}

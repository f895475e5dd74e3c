package unistd_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/unistd"
)

// The exec family replaces the test binary on success, so only failure paths
// are exercised in-process. Successful execs run in forked children (see
// fork_test.go).

func Test_Execve_Returns_ENOENT_When_Program_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing")

	err := unistd.Execve(path, []string{path}, nil)
	if err != errno.ENOENT {
		t.Fatalf("Execve(%q): err=%v, want %v", path, err, errno.ENOENT)
	}
}

func Test_Execve_Returns_EACCES_When_Program_Not_Executable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := unistd.Execve(dir, []string{dir}, nil)
	if err != errno.EACCES {
		t.Fatalf("Execve(dir): err=%v, want %v", err, errno.EACCES)
	}
}

func Test_Execve_Returns_EINVAL_When_Argument_Contains_NUL(t *testing.T) {
	t.Parallel()

	err := unistd.Execve("/bin/sh", []string{"sh", "a\x00b"}, nil)
	if err != errno.EINVAL {
		t.Fatalf("Execve(NUL arg): err=%v, want %v", err, errno.EINVAL)
	}
}

func Test_Execvpe_Returns_ENOENT_When_Not_On_PATH(t *testing.T) {
	t.Setenv("PATH", t.TempDir()+":"+t.TempDir())

	err := unistd.Execvpe("no-such-program", []string{"no-such-program"}, nil)
	if err != errno.ENOENT {
		t.Fatalf("Execvpe(no-such-program): err=%v, want %v", err, errno.ENOENT)
	}

	err = unistd.Execvp("", nil)
	require.ErrorIs(t, err, errno.ENOENT)
}

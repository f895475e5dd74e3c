//go:build linux || dragonfly || freebsd || netbsd || openbsd

package unistd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/unistd"
)

func Test_Pipe2_Sets_Cloexec_On_Both_Ends(t *testing.T) {
	t.Parallel()

	r, w, err := unistd.Pipe2(fcntl.O_CLOEXEC)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	rf, err := fcntl.GetFD(r.FD())
	require.NoError(t, err)
	assert.True(t, rf.Contains(fcntl.FD_CLOEXEC), "read end flags=%v", rf)

	wf, err := fcntl.GetFD(w.FD())
	require.NoError(t, err)
	assert.True(t, wf.Contains(fcntl.FD_CLOEXEC), "write end flags=%v", wf)
}

func Test_Pipe2_Applies_Nonblock(t *testing.T) {
	t.Parallel()

	r, w, err := unistd.Pipe2(fcntl.O_CLOEXEC | fcntl.O_NONBLOCK)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	buf := make([]byte, 1)

	_, err = unistd.Read(r.FD(), buf)
	if !errno.IsWouldBlock(err) {
		t.Fatalf("Read(empty nonblocking pipe): err=%v, want EAGAIN", err)
	}
}

func Test_Pipe2_Rejects_Creation_Flags(t *testing.T) {
	t.Parallel()

	_, _, err := unistd.Pipe2(fcntl.O_CREAT)
	require.ErrorIs(t, err, errno.ErrInvalidInput)
}

func Test_Dup3_Sets_Cloexec_And_Rejects_Other_Flags(t *testing.T) {
	t.Parallel()

	r, w, err := unistd.Pipe2(fcntl.O_CLOEXEC)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	target, err := fcntl.DupFD(r.FD(), 200, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = target.Close() })

	require.NoError(t, unistd.Dup3(w.FD(), target.FD(), fcntl.O_CLOEXEC))

	flags, err := fcntl.GetFD(target.FD())
	require.NoError(t, err)
	assert.True(t, flags.Contains(fcntl.FD_CLOEXEC))

	err = unistd.Dup3(w.FD(), target.FD(), fcntl.O_NONBLOCK)
	require.ErrorIs(t, err, errno.ErrInvalidInput)
}

func Test_Sleep_Returns_Zero_When_Not_Interrupted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(0), unistd.Sleep(0))
}

//go:build linux || freebsd || netbsd || openbsd

package unistd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/bitflags"
	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/stat"
	"github.com/calvinalkan/posix/pkg/unistd"
)

func Test_Mkfifoat_Creates_Fifo_Relative_To_Dirfd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, unistd.Mkfifoat(openDir(t, dir), "fifo", 0o600))

	err := unistd.Mkfifoat(openDir(t, dir), "fifo", 0o600)
	if err != errno.EEXIST {
		t.Fatalf("Mkfifoat(existing): err=%v, want %v", err, errno.EEXIST)
	}
}

func Test_Mkfifoat_Rejects_Unknown_Mode_Bits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := unistd.Mkfifoat(openDir(t, dir), "fifo", stat.Mode(0o1000000))
	require.ErrorIs(t, err, bitflags.ErrUnknownBits)

	require.NoError(t, unistd.Mkfifoat(openDir(t, dir), "fifo", 0o600))
}

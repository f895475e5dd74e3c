package unistd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/unistd"
)

func Test_Getpid_And_Getppid_Return_Positive_Distinct_Ids(t *testing.T) {
	t.Parallel()

	pid := unistd.Getpid()
	ppid := unistd.Getppid()

	assert.Positive(t, pid.Raw())
	assert.Positive(t, ppid.Raw())
	assert.NotEqual(t, pid, ppid)
	assert.Equal(t, pid, unistd.PidFromRaw(pid.Raw()))
}

func Test_Getsid_Self_Matches_Getsid_Of_Own_Pid(t *testing.T) {
	t.Parallel()

	self, err := unistd.Getsid(unistd.Self)
	require.NoError(t, err)

	own, err := unistd.Getsid(unistd.Getpid())
	require.NoError(t, err)

	assert.Equal(t, own, self)
}

func Test_Getpgid_Self_Matches_Getpgrp(t *testing.T) {
	t.Parallel()

	pgid, err := unistd.Getpgid(unistd.Self)
	require.NoError(t, err)
	assert.Equal(t, unistd.Getpgrp(), pgid)
}

func Test_Getsid_Returns_ESRCH_When_Process_Missing(t *testing.T) {
	t.Parallel()

	// Linux pid_max is at most 2^22.
	_, err := unistd.Getsid(unistd.PidFromRaw(1 << 30))
	if err == nil {
		t.Fatalf("Getsid(1<<30): err=nil, want ESRCH")
	}
}

func Test_Uid_And_Gid_Round_Trip_Raw_Values(t *testing.T) {
	t.Parallel()

	uid := unistd.Getuid()
	assert.Equal(t, uid, unistd.UidFromRaw(uid.Raw()))
	assert.Equal(t, uid.Raw() == 0, uid.IsRoot())

	gid := unistd.Getgid()
	assert.Equal(t, gid, unistd.GidFromRaw(gid.Raw()))
	assert.Equal(t, uid.String(), unistd.UidFromRaw(uid.Raw()).String())
}

func Test_Getgroups_Succeeds(t *testing.T) {
	t.Parallel()

	_, err := unistd.Getgroups()
	require.NoError(t, err)
}

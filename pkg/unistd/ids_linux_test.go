package unistd_test

import (
	"os/user"
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/unistd"
)

func Test_Gettid_Returns_Stable_Id_When_Thread_Locked(t *testing.T) {
	t.Parallel()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid := unistd.Gettid()
	assert.Positive(t, tid.Raw())
	assert.Equal(t, tid, unistd.Gettid())
}

func Test_Getgrouplist_Starts_With_Given_Group(t *testing.T) {
	t.Parallel()

	u, err := user.Current()
	require.NoError(t, err)

	groups, err := unistd.Getgrouplist(u.Username, 12345)
	require.NoError(t, err)
	require.NotEmpty(t, groups)
	assert.Equal(t, unistd.Gid(12345), groups[0])
}

func Test_Getgrouplist_Returns_Only_Group_When_User_Unknown(t *testing.T) {
	t.Parallel()

	groups, err := unistd.Getgrouplist("no-such-user-for-grouplist", 7)
	require.NoError(t, err)
	assert.Equal(t, []unistd.Gid{7}, groups)
}

func Test_Setgroups_And_Initgroups_Replace_Supplementary_Groups(t *testing.T) {
	if !unistd.Geteuid().IsRoot() {
		t.Skip("setgroups requires root")
	}

	serialize(t)

	old, err := unistd.Getgroups()
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := unistd.Setgroups(old); err != nil {
			t.Errorf("restoring groups %v: %v", old, err)
		}
	})

	want := []unistd.Gid{123, 456}
	require.NoError(t, unistd.Setgroups(want))

	got, err := unistd.Getgroups()
	require.NoError(t, err)
	slices.Sort(got)
	assert.Equal(t, want, got)

	const group = unistd.Gid(123)

	list, err := unistd.Getgrouplist("root", group)
	require.NoError(t, err)
	require.Contains(t, list, group)

	require.NoError(t, unistd.Initgroups("root", group))

	got, err = unistd.Getgroups()
	require.NoError(t, err)

	slices.Sort(got)
	slices.Sort(list)
	assert.Equal(t, list, got)
}

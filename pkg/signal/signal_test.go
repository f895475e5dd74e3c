package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/unistd"
)

func Test_Parse_Accepts_Names_And_Numbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want signal.Signal
	}{
		{in: "SIGTERM", want: signal.SIGTERM},
		{in: "TERM", want: signal.SIGTERM},
		{in: "sigint", want: signal.SIGINT},
		{in: "kill", want: signal.SIGKILL},
		{in: "9", want: signal.SIGKILL},
		{in: "10", want: signal.Signal(10)},
	}

	for _, tt := range tests {
		got, err := signal.Parse(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("Parse(%q)=(%v, %v), want (%v, nil)", tt.in, got, err, tt.want)
		}
	}
}

func Test_Parse_Fails_When_Name_Unknown_Or_Number_Out_Of_Range(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"SIGNOPE", "", "0", "-3", "1000"} {
		_, err := signal.Parse(in)
		require.ErrorIs(t, err, signal.ErrInvalidSignal, "Parse(%q)", in)
	}
}

func Test_FromRaw_Validates_Range(t *testing.T) {
	t.Parallel()

	sig, err := signal.FromRaw(int(signal.SIGHUP))
	require.NoError(t, err)
	assert.Equal(t, signal.SIGHUP, sig)

	_, err = signal.FromRaw(int(signal.Max) + 1)
	require.ErrorIs(t, err, errno.ErrInvalidInput)
}

func Test_Signal_String_Names_Known_Signals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SIGTERM", signal.SIGTERM.String())
	assert.Equal(t, "SIGKILL", signal.SIGKILL.String())
}

func Test_Signal_Catchable_Excludes_KILL_And_STOP(t *testing.T) {
	t.Parallel()

	assert.False(t, signal.SIGKILL.Catchable())
	assert.False(t, signal.SIGSTOP.Catchable())
	assert.True(t, signal.SIGTERM.Catchable())
	assert.False(t, signal.Signal(0).Catchable())
}

func Test_Named_Is_Sorted_And_Includes_Standard_Signals(t *testing.T) {
	t.Parallel()

	named := signal.Named()

	assert.Contains(t, named, signal.SIGTERM)
	assert.Contains(t, named, signal.SIGCHLD)
	assert.IsIncreasing(t, named)
}

func Test_Probe_Succeeds_For_Self_And_Fails_With_ESRCH_For_Missing_Process(t *testing.T) {
	t.Parallel()

	require.NoError(t, signal.Probe(unistd.Getpid()))

	// Above the largest pid_max any system allows.
	missing := unistd.Pid(1 << 30)

	err := signal.Probe(missing)
	if err != errno.ESRCH {
		t.Fatalf("Probe(%d): err=%v, want %v", missing, err, errno.ESRCH)
	}
}

func Test_Kill_Rejects_Invalid_Signal_Before_Sending(t *testing.T) {
	t.Parallel()

	err := signal.Kill(unistd.Getpid(), 0)
	require.ErrorIs(t, err, signal.ErrInvalidSignal)

	err = signal.Killpg(-1, signal.SIGTERM)
	require.ErrorIs(t, err, errno.ErrInvalidInput)
}

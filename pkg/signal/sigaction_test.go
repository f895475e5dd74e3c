package signal_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/signal"
)

// Dispositions are process-wide; tests that change them run one at a time.
var dispositionMu sync.Mutex

// withDisposition serializes the test and restores sig to the default
// disposition when it ends.
func withDisposition(t *testing.T, sig signal.Signal) {
	t.Helper()

	dispositionMu.Lock()
	t.Cleanup(func() {
		_, _ = signal.Sigaction(sig, signal.SigAction{})
		dispositionMu.Unlock()
	})
}

func waitFor(t *testing.T, ch <-chan signal.Signal) signal.Signal {
	t.Helper()

	select {
	case sig := <-ch:
		return sig
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not run within 5s")
		return 0
	}
}

func Test_Sigaction_Rejects_Uncatchable_Signals(t *testing.T) {
	t.Parallel()

	actions := []signal.SigAction{
		{Handler: signal.SigDfl},
		{Handler: signal.SigIgn},
		{Handler: signal.Handler(func(signal.Signal) {})},
	}

	for _, sig := range []signal.Signal{signal.SIGKILL, signal.SIGSTOP} {
		for _, act := range actions {
			_, err := signal.Sigaction(sig, act)
			require.ErrorIs(t, err, signal.ErrUncatchable, "Sigaction(%s, %s)", sig, act.Handler)
			require.ErrorIs(t, err, errno.ErrInvalidInput)
		}
	}
}

func Test_Sigaction_Rejects_Unsupported_And_Unknown_Flags(t *testing.T) {
	t.Parallel()

	for _, flags := range []signal.SaFlags{signal.SA_SIGINFO, signal.SA_NOCLDSTOP, signal.SA_NOCLDWAIT | signal.SA_RESTART} {
		_, err := signal.Sigaction(signal.SIGUSR1, signal.SigAction{Handler: signal.SigDfl, Flags: flags})
		require.ErrorIs(t, err, signal.ErrUnsupportedFlags, "flags %s", flags)
	}

	unknown := ^signal.SaFlagsTable().All()
	if unknown != 0 {
		_, err := signal.Sigaction(signal.SIGUSR1, signal.SigAction{Flags: unknown})
		require.ErrorIs(t, err, errno.ErrInvalidInput)
	}
}

func Test_Sigaction_Rejects_Nil_Handler_Func(t *testing.T) {
	t.Parallel()

	_, err := signal.Sigaction(signal.SIGUSR1, signal.SigAction{Handler: signal.Handler(nil)})
	require.ErrorIs(t, err, errno.ErrInvalidInput)
}

func Test_Sigaction_Rejects_Invalid_Signal(t *testing.T) {
	t.Parallel()

	_, err := signal.Sigaction(0, signal.SigAction{})
	require.ErrorIs(t, err, signal.ErrInvalidSignal)

	_, err = signal.Current(signal.Max + 1)
	require.ErrorIs(t, err, signal.ErrInvalidSignal)
}

func Test_Handler_Runs_When_Signal_Raised(t *testing.T) {
	withDisposition(t, signal.SIGUSR1)

	got := make(chan signal.Signal, 1)

	_, err := signal.Sigaction(signal.SIGUSR1, signal.SigAction{
		Handler: signal.Handler(func(sig signal.Signal) { got <- sig }),
		Flags:   signal.SA_RESTART,
	})
	require.NoError(t, err)

	require.NoError(t, signal.Raise(signal.SIGUSR1))

	if sig := waitFor(t, got); sig != signal.SIGUSR1 {
		t.Fatalf("handler got %s, want %s", sig, signal.SIGUSR1)
	}
}

func Test_Sigaction_Returns_Previous_Action(t *testing.T) {
	withDisposition(t, signal.SIGUSR2)

	prev, err := signal.Sigaction(signal.SIGUSR2, signal.SigAction{Handler: signal.SigIgn})
	require.NoError(t, err)
	assert.True(t, prev.Handler.IsDefault(), "first Sigaction prev=%s, want SIG_DFL", prev.Handler)

	act := signal.NewSigAction(signal.Handler(func(signal.Signal) {}), signal.SA_RESTART|signal.SA_NODEFER, mustSet(t, signal.SIGINT))

	prev, err = signal.Sigaction(signal.SIGUSR2, act)
	require.NoError(t, err)
	assert.True(t, prev.Handler.IsIgnore(), "second Sigaction prev=%s, want SIG_IGN", prev.Handler)

	prev, err = signal.Sigaction(signal.SIGUSR2, signal.SigAction{})
	require.NoError(t, err)
	assert.NotNil(t, prev.Handler.Func())
	assert.Equal(t, act.Flags, prev.Flags)
	assert.Equal(t, act.Mask, prev.Mask)

	cur, err := signal.Current(signal.SIGUSR2)
	require.NoError(t, err)
	assert.True(t, cur.Handler.IsDefault())
}

func Test_Ignored_Signal_Does_Not_Terminate_Process(t *testing.T) {
	withDisposition(t, signal.SIGUSR2)

	_, err := signal.SetHandler(signal.SIGUSR2, signal.SigIgn)
	require.NoError(t, err)

	require.NoError(t, signal.Raise(signal.SIGUSR2))

	// Still running: give delivery a moment to happen.
	time.Sleep(50 * time.Millisecond)
}

func Test_Handler_Resets_To_Default_When_SA_RESETHAND(t *testing.T) {
	withDisposition(t, signal.SIGUSR1)

	var calls atomic.Int32

	got := make(chan signal.Signal, 1)

	_, err := signal.Sigaction(signal.SIGUSR1, signal.SigAction{
		Handler: signal.Handler(func(sig signal.Signal) {
			calls.Add(1)
			got <- sig
		}),
		Flags: signal.SA_RESETHAND,
	})
	require.NoError(t, err)

	require.NoError(t, signal.Raise(signal.SIGUSR1))
	waitFor(t, got)

	cur, err := signal.Current(signal.SIGUSR1)
	require.NoError(t, err)

	if !cur.Handler.IsDefault() {
		t.Fatalf("Current(SIGUSR1) after one delivery=%s, want SIG_DFL", cur.Handler)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func Test_Handler_Runs_Once_When_SA_RESETHAND_And_Signal_Repeats(t *testing.T) {
	withDisposition(t, signal.SIGWINCH)

	var calls atomic.Int32

	release := make(chan struct{})
	got := make(chan signal.Signal, 2)

	_, err := signal.Sigaction(signal.SIGWINCH, signal.SigAction{
		Handler: signal.Handler(func(sig signal.Signal) {
			calls.Add(1)
			got <- sig
			<-release
		}),
		Flags: signal.SA_RESETHAND,
	})
	require.NoError(t, err)

	require.NoError(t, signal.Raise(signal.SIGWINCH))
	waitFor(t, got)

	// The handler is still running; the second one is either dropped by the
	// dispatcher or ignored by default.
	require.NoError(t, signal.Raise(signal.SIGWINCH))
	close(release)

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())

	cur, err := signal.Current(signal.SIGWINCH)
	require.NoError(t, err)
	assert.True(t, cur.Handler.IsDefault(), "Current(SIGWINCH)=%s, want SIG_DFL", cur.Handler)
}

func Test_SaFlags_String_Joins_Names(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SA_RESTART|SA_RESETHAND", (signal.SA_RESETHAND | signal.SA_RESTART).String())

	flags, err := signal.SaFlagsFromBits((signal.SA_ONSTACK | signal.SA_NODEFER).Bits())
	require.NoError(t, err)
	assert.True(t, flags.Contains(signal.SA_NODEFER))
}

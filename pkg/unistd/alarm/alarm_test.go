//go:build linux || freebsd || dragonfly

package alarm_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/unistd/alarm"
)

// The alarm is one per process.
var alarmMu sync.Mutex

// armed serializes the test, installs a counting SIGALRM handler and clears
// both the alarm and the handler when the test ends.
func armed(t *testing.T) *atomic.Int32 {
	t.Helper()

	alarmMu.Lock()

	var fired atomic.Int32

	_, err := signal.Sigaction(signal.SIGALRM, signal.SigAction{
		Handler: signal.Handler(func(signal.Signal) { fired.Add(1) }),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _, _ = alarm.Cancel()
		_, _ = signal.Sigaction(signal.SIGALRM, signal.SigAction{})
		alarmMu.Unlock()
	})

	return &fired
}

func Test_Set_Returns_Previous_Remaining_Seconds(t *testing.T) {
	armed(t)

	prev, pending, err := alarm.Set(60)
	require.NoError(t, err)

	if prev != 0 || pending {
		t.Fatalf("Set(60)=(%d, %v), want (0, false)", prev, pending)
	}

	prev, pending, err = alarm.Set(1)
	require.NoError(t, err)

	if prev != 60 || !pending {
		t.Fatalf("Set(1) after Set(60)=(%d, %v), want (60, true)", prev, pending)
	}
}

func Test_Cancel_Reports_Pending_Alarm_Once(t *testing.T) {
	armed(t)

	_, _, err := alarm.Set(30)
	require.NoError(t, err)

	prev, pending, err := alarm.Cancel()
	require.NoError(t, err)

	if prev != 30 || !pending {
		t.Fatalf("Cancel()=(%d, %v), want (30, true)", prev, pending)
	}

	prev, pending, err = alarm.Cancel()
	require.NoError(t, err)

	if prev != 0 || pending {
		t.Fatalf("second Cancel()=(%d, %v), want (0, false)", prev, pending)
	}
}

func Test_Alarm_Delivers_SIGALRM_To_Handler(t *testing.T) {
	fired := armed(t)

	_, _, err := alarm.Set(1)
	require.NoError(t, err)

	time.Sleep(2 * time.Second)

	if fired.Load() != 1 {
		t.Fatalf("SIGALRM handler calls=%d after 2s, want 1", fired.Load())
	}

	prev, pending, err := alarm.Cancel()
	require.NoError(t, err)

	if prev != 0 || pending {
		t.Fatalf("Cancel() after delivery=(%d, %v), want (0, false)", prev, pending)
	}
}

func Test_Set_Rejects_Zero_Seconds(t *testing.T) {
	t.Parallel()

	_, _, err := alarm.Set(0)
	require.ErrorIs(t, err, errno.ErrInvalidInput)
}

func Test_Set_Replaces_Pending_Alarm_So_Only_New_One_Fires(t *testing.T) {
	fired := armed(t)

	_, _, err := alarm.Set(1)
	require.NoError(t, err)

	_, _, err = alarm.Set(3)
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	if fired.Load() != 0 {
		t.Fatalf("SIGALRM handler calls=%d at 1.5s, want 0 (first alarm replaced)", fired.Load())
	}

	time.Sleep(2 * time.Second)

	if fired.Load() != 1 {
		t.Fatalf("SIGALRM handler calls=%d at 3.5s, want 1", fired.Load())
	}
}

func Test_Cancel_Prevents_Pending_Alarm_From_Firing(t *testing.T) {
	fired := armed(t)

	_, _, err := alarm.Set(1)
	require.NoError(t, err)

	_, pending, err := alarm.Cancel()
	require.NoError(t, err)
	require.True(t, pending)

	time.Sleep(1500 * time.Millisecond)

	if fired.Load() != 0 {
		t.Fatalf("SIGALRM handler calls=%d 1.5s after Cancel, want 0", fired.Load())
	}
}

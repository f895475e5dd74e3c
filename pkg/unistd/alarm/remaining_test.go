//go:build linux || freebsd || dragonfly

package alarm

import "testing"

func Test_Remaining_Rounds_Like_Alarm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sec, usec int64
		want      uint
	}{
		{sec: 59, usec: 999_999, want: 60},
		{sec: 59, usec: 500_000, want: 60},
		{sec: 59, usec: 499_999, want: 59},
		{sec: 0, usec: 1, want: 1},
		{sec: 3, usec: 0, want: 3},
	}

	for _, tt := range tests {
		if got := remaining(tt.sec, tt.usec); got != tt.want {
			t.Fatalf("remaining(%d, %d)=%d, want %d", tt.sec, tt.usec, got, tt.want)
		}
	}
}

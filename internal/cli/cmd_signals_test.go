package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/posix/internal/cli"
	"github.com/calvinalkan/posix/pkg/signal"
)

func Test_Signals_Lists_Named_Signals_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("signals")

	lines := strings.Split(stdout, "\n")
	if got, want := len(lines), len(signal.Named()); got != want {
		t.Fatalf("signals printed %d lines, want %d", got, want)
	}

	cli.AssertContains(t, stdout, "SIGKILL    uncatchable")
	cli.AssertContains(t, stdout, "SIGTERM    catchable")
}

func Test_Signals_All_Lists_Every_Signal_When_Flag_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("signals", "--all")

	lines := strings.Split(stdout, "\n")
	if got, want := len(lines), signal.Full().Len(); got != want {
		t.Fatalf("signals --all printed %d lines, want %d", got, want)
	}
}

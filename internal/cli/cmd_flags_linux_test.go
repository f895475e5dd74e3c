package cli_test

import (
	"testing"

	"github.com/calvinalkan/posix/internal/cli"
)

func Test_Flags_Round_Trips_Open_Flags_When_On_Linux(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("flags", "oflag", "O_RDWR|O_CREAT"), "0x42"; got != want {
		t.Errorf("flags oflag O_RDWR|O_CREAT: got %q, want %q", got, want)
	}

	if got, want := c.MustRun("flags", "oflag", "0x42"), "O_RDWR|O_CREAT"; got != want {
		t.Errorf("flags oflag 0x42: got %q, want %q", got, want)
	}

	if got, want := c.MustRun("flags", "sa", "SA_RESTART"), "0x10000000"; got != want {
		t.Errorf("flags sa SA_RESTART: got %q, want %q", got, want)
	}
}

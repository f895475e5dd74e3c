package cli

import (
	"context"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/posix/pkg/unistd"
	"github.com/calvinalkan/posix/pkg/wait"
)

// StatusCmd returns the status command.
func StatusCmd() *Command {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	pid := fs.Int("pid", 0, "Pid to report the statuses for")

	return &Command{
		Flags: fs,
		Usage: "status [--pid N] <raw>...",
		Short: "Decode raw wait statuses",
		Long: `Decode wait(2) status words (decimal, 0x hex or 0 octal) the way the
platform encodes them, e.g. "posixctl status 0x100" on Linux prints
"pid 0 exited with code 1".`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return ErrRawStatusRequired
			}

			for _, arg := range args {
				raw, err := strconv.ParseUint(arg, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid raw status %q: %w", arg, err)
				}

				status, err := wait.Decode(unistd.PidFromRaw(*pid), uint32(raw))
				if err != nil {
					o.Warn(arg, err.Error())
					continue
				}

				o.Printf("%s\t%s\n", arg, status)
			}

			return nil
		},
	}
}

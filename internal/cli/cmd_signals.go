package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/posix/pkg/signal"
)

// SignalsCmd returns the signals command.
func SignalsCmd() *Command {
	fs := flag.NewFlagSet("signals", flag.ContinueOnError)
	all := fs.BoolP("all", "a", false, "Also list unnamed (real-time) signals")

	return &Command{
		Flags: fs,
		Usage: "signals [--all]",
		Short: "List the platform's signals",
		Long:  "List signal numbers and names, and whether a handler may be installed for each.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			sigs := signal.Named()
			if *all {
				sigs = nil

				for s := range signal.Full().All() {
					sigs = append(sigs, s)
				}
			}

			for _, s := range sigs {
				catch := "catchable"
				if !s.Catchable() {
					catch = "uncatchable"
				}

				o.Printf("%3d  %-10s %s\n", s.Raw(), s, catch)
			}

			return nil
		},
	}
}

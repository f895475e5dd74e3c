package cli

import (
	"context"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/posix/pkg/unistd"
)

// MkfifoCmd returns the mkfifo command.
func MkfifoCmd(cfg *Config) *Command {
	fs := flag.NewFlagSet("mkfifo", flag.ContinueOnError)
	mode := fs.StringP("mode", "m", "", "Octal permission bits (default from config)")

	return &Command{
		Flags: fs,
		Usage: "mkfifo [--mode M] <path>...",
		Short: "Create named pipes",
		Long:  "Create a FIFO at each path. The process umask applies to the mode.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return ErrPathRequired
			}

			perm := cfg.Fifo
			if *mode != "" {
				m, err := parseMode(*mode)
				if err != nil {
					return err
				}

				perm = m
			}

			for _, arg := range args {
				path := arg
				if !filepath.IsAbs(path) {
					path = filepath.Join(cfg.EffectiveCwd, path)
				}

				if err := unistd.Mkfifo(path, perm); err != nil {
					return fmt.Errorf("mkfifo %s: %w", arg, err)
				}

				o.Debugf("created %s mode %s", path, perm)
			}

			return nil
		},
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/posix/pkg/fcntl"
)

// FlockCmd returns the flock command.
func FlockCmd(cfg *Config, env map[string]string, sigCh <-chan os.Signal) *Command {
	fs := flag.NewFlagSet("flock", flag.ContinueOnError)
	shared := fs.Bool("shared", false, "Take a shared lock instead of an exclusive one")
	timeout := fs.Duration("timeout", 0, "Give up after `duration` (default from config, 0 = wait forever)")
	nonblock := fs.BoolP("nonblock", "n", false, "Fail at once if the lock is held")

	return &Command{
		Flags: fs,
		Usage: "flock [flags] <path> -- <prog> [args...]",
		Short: "Run a program while holding a lock file",
		Long: `Lock <path> with flock(2), creating it if needed, run the program and
release the lock when it exits. The exit code mirrors the child.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return ErrPathRequired
			}

			if len(args) == 1 {
				return ErrProgramRequired
			}

			path := args[0]
			if !filepath.IsAbs(path) {
				path = filepath.Join(cfg.EffectiveCwd, path)
			}

			wait := cfg.LockWait
			if fs.Changed("timeout") {
				wait = *timeout
			}

			var (
				held *fcntl.Held
				err  error
			)

			if *nonblock {
				held, err = fcntl.TryLockFile(path, *shared)
			} else {
				held, err = fcntl.LockFile(path, fcntl.LockOptions{Shared: *shared, Timeout: wait})
			}

			if err != nil {
				return fmt.Errorf("locking %s: %w", args[0], err)
			}

			o.Debugf("locked %s (fd %s)", held.Path(), held.FD())

			runErr := execRun(o, cfg, childSpec{
				argv:  args[1:],
				env:   env,
				dir:   cfg.EffectiveCwd,
				kill:  cfg.Kill,
				sigCh: sigCh,
			}, "")

			return errors.Join(runErr, held.Close())
		},
	}
}

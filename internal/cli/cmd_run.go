package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/wait"
)

// RunCmd returns the run command.
func RunCmd(cfg *Config, env map[string]string, sigCh <-chan os.Signal) *Command {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	timeout := fs.UintP("timeout", "t", 0, "Send the kill signal after `secs` seconds (default from config, 0 = none)")
	sigName := fs.StringP("signal", "s", "", "Signal sent on timeout (default from config)")
	statusFile := fs.String("status-file", "", "Write the final status as JSON to `path`")
	viaShell := fs.Bool("sh", false, "Run the arguments as one command line through the configured shell")

	return &Command{
		Flags: fs,
		Usage: "run [flags] -- <prog> [args...]",
		Short: "Run a program and report how it ended",
		Long: `Fork and exec a program, wait for it and print its decoded wait status
to stderr. The exit code mirrors the child: its exit code, or 128+N when it
was killed by signal N.

With --timeout the child receives the kill signal once the time is up.
Signals posixctl receives while waiting are forwarded to the child.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			secs := cfg.Timeout
			if fs.Changed("timeout") {
				secs = *timeout
			}

			kill := cfg.Kill
			if *sigName != "" {
				sig, err := signal.Parse(*sigName)
				if err != nil {
					return err
				}

				kill = sig
			}

			argv := args
			if *viaShell {
				if len(args) == 0 {
					return ErrProgramRequired
				}

				argv = []string{cfg.Shell, "-c", strings.Join(args, " ")}
			}

			return execRun(o, cfg, childSpec{
				argv:    argv,
				env:     env,
				dir:     cfg.EffectiveCwd,
				timeout: secs,
				kill:    kill,
				sigCh:   sigCh,
			}, *statusFile)
		},
	}
}

func execRun(o *IO, cfg *Config, spec childSpec, statusFile string) error {
	res, err := runChild(o, spec)
	if err != nil {
		return err
	}

	if res.timedOut {
		o.ErrPrintln("posixctl: timed out after", spec.timeout, "seconds, sent", spec.kill)
	}

	o.ErrPrintln("posixctl:", res.status)

	if statusFile != "" {
		path := statusFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.EffectiveCwd, path)
		}

		if err := writeStatusFile(path, res); err != nil {
			return err
		}
	}

	if code := exitCode(res.status); code != 0 {
		return &exitError{code: code}
	}

	return nil
}

// statusRecord is the JSON form of a final child status.
type statusRecord struct {
	Pid        int    `json:"pid"`
	State      string `json:"state"`
	Code       *int   `json:"code,omitempty"`
	Signal     string `json:"signal,omitempty"`
	CoreDumped bool   `json:"core_dumped,omitempty"`
	TimedOut   bool   `json:"timed_out"`
	Status     string `json:"status"`
}

func newStatusRecord(res childResult) statusRecord {
	rec := statusRecord{
		Pid:      res.pid.Raw(),
		TimedOut: res.timedOut,
		Status:   res.status.String(),
	}

	switch s := res.status.(type) {
	case wait.Exited:
		code := s.Code
		rec.State = "exited"
		rec.Code = &code
	case wait.Signaled:
		rec.State = "signaled"
		rec.Signal = s.Signal.String()
		rec.CoreDumped = s.CoreDumped
	case wait.Stopped:
		rec.State = "stopped"
		rec.Signal = s.Signal.String()
	default:
		rec.State = "other"
	}

	return rec
}

func writeStatusFile(path string, res childResult) error {
	data, err := json.MarshalIndent(newStatusRecord(res), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}

	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing status file: %w", err)
	}

	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/unistd"
	"github.com/calvinalkan/posix/pkg/wait"
)

// childSpec describes one child run by run and flock.
type childSpec struct {
	argv    []string
	env     map[string]string
	dir     string
	timeout uint // seconds, 0 = none
	kill    signal.Signal
	sigCh   <-chan os.Signal
}

// childResult is what runChild observed.
type childResult struct {
	pid      unistd.Pid
	status   wait.Status
	timedOut bool
}

// lookPath resolves file against pathEnv the way execvp does. Relative
// results are resolved against dir.
func lookPath(file, pathEnv, dir string) (string, error) {
	if strings.Contains(file, "/") {
		return file, nil
	}

	if pathEnv == "" {
		pathEnv = "/bin:/usr/bin"
	}

	for p := range strings.SplitSeq(pathEnv, ":") {
		if p == "" {
			p = "."
		}

		candidate := filepath.Join(p, file)

		check := candidate
		if !filepath.IsAbs(check) && dir != "" {
			check = filepath.Join(dir, check)
		}

		st, err := os.Stat(check)
		if err != nil || st.IsDir() {
			continue
		}

		if unistd.Access(check, unistd.X_OK) == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrProgramNotFound, file)
}

func environ(env map[string]string) []string {
	out := make([]string, 0, len(env))

	for k, v := range env {
		out = append(out, k+"="+v)
	}

	return out
}

// exitCode maps a final status to a shell-style exit code.
func exitCode(s wait.Status) int {
	switch s := s.(type) {
	case wait.Exited:
		return s.Code
	case wait.Signaled:
		return 128 + s.Signal.Raw()
	default:
		return 1
	}
}

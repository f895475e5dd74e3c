//go:build linux || freebsd

// sysrepl is an interactive shell over the posix wrappers.
//
// Usage:
//
//	sysrepl
//
// Commands (in REPL):
//
//	ids                          Show process, group and user ids
//	cwd [dir]                    Show or change the working directory
//	pipe                         Create a pipe and show its descriptors
//	write <fd> <text>            Write text to a descriptor
//	read <fd> [n]                Read up to n bytes from a descriptor
//	seek <fd> <offset> [whence]  Reposition a descriptor (set, cur, end)
//	close <fd>                   Close a descriptor opened here
//	mkfifo <path> [mode]         Create a named pipe
//	signals                      List signals
//	trap <sig>                   Count deliveries of a signal
//	ignore <sig>                 Ignore a signal
//	default <sig>                Restore a signal's default action
//	traps                        Show delivery counts
//	kill <pid> <sig>             Send a signal
//	alarm <secs>|cancel          Set or cancel the process alarm
//	spawn <prog> [args...]       Start a child
//	wait [pid] [nohang]          Reap a child
//	status <raw>                 Decode a raw wait status
//	help                         Show this help
//	exit / quit / q              Exit
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/stat"
	"github.com/calvinalkan/posix/pkg/unistd"
	"github.com/calvinalkan/posix/pkg/unistd/alarm"
	"github.com/calvinalkan/posix/pkg/wait"
)

var errUsage = errors.New("usage")

func main() {
	r := &REPL{
		open:  make(map[fd.FD]*fd.Owned),
		traps: make(map[signal.Signal]int),
	}

	if err := r.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// REPL is the interactive command loop.
type REPL struct {
	liner *liner.State

	// open holds descriptors created in this session.
	open map[fd.FD]*fd.Owned

	mu    sync.Mutex
	traps map[signal.Signal]int
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".sysrepl_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("sysrepl (pid %d)\n", unistd.Getpid())
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	defer r.saveHistory()

	for {
		line, err := r.liner.Prompt("sysrepl> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")

				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		if cmd == "exit" || cmd == "quit" || cmd == "q" {
			fmt.Println("Bye!")

			return nil
		}

		if err := r.dispatch(cmd, parts[1:]); err != nil {
			if errors.Is(err, errUsage) {
				fmt.Println(err)
				continue
			}

			fmt.Printf("error: %v\n", err)
		}
	}
}

func (r *REPL) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		r.printHelp()
		return nil
	case "ids":
		return r.cmdIDs()
	case "cwd", "cd":
		return r.cmdCwd(args)
	case "pipe":
		return r.cmdPipe()
	case "write":
		return r.cmdWrite(args)
	case "read":
		return r.cmdRead(args)
	case "seek":
		return r.cmdSeek(args)
	case "close":
		return r.cmdClose(args)
	case "mkfifo":
		return r.cmdMkfifo(args)
	case "signals":
		return r.cmdSignals()
	case "trap":
		return r.cmdDisposition(args, "trap")
	case "ignore":
		return r.cmdDisposition(args, "ignore")
	case "default":
		return r.cmdDisposition(args, "default")
	case "traps":
		r.cmdTraps()
		return nil
	case "kill":
		return r.cmdKill(args)
	case "alarm":
		return r.cmdAlarm(args)
	case "spawn":
		return r.cmdSpawn(args)
	case "wait":
		return r.cmdWait(args)
	case "status":
		return r.cmdStatus(args)
	case "clear", "cls":
		fmt.Print("\033[H\033[2J")
		return nil
	default:
		fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		return nil
	}
}

// saveHistory persists command history to disk.
func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

var commandNames = []string{
	"ids", "cwd", "cd", "pipe", "write", "read", "seek", "close",
	"mkfifo", "signals", "trap", "ignore", "default", "traps",
	"kill", "alarm", "spawn", "wait", "status",
	"clear", "cls", "help", "exit", "quit", "q",
}

// completer completes command names, and signal names after commands that
// take one.
func (r *REPL) completer(line string) []string {
	var completions []string

	cmd, rest, hasArgs := strings.Cut(line, " ")
	if !hasArgs {
		lower := strings.ToLower(line)
		for _, c := range commandNames {
			if strings.HasPrefix(c, lower) {
				completions = append(completions, c)
			}
		}

		return completions
	}

	switch cmd {
	case "trap", "ignore", "default":
		upper := strings.ToUpper(rest)
		for _, s := range signal.Named() {
			if strings.HasPrefix(s.String(), upper) {
				completions = append(completions, cmd+" "+s.String())
			}
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  ids                          Show process, group and user ids")
	fmt.Println("  cwd [dir]                    Show or change the working directory")
	fmt.Println("  pipe                         Create a pipe and show its descriptors")
	fmt.Println("  write <fd> <text>            Write text to a descriptor")
	fmt.Println("  read <fd> [n]                Read up to n bytes from a descriptor")
	fmt.Println("  seek <fd> <offset> [whence]  Reposition a descriptor (set, cur, end)")
	fmt.Println("  close <fd>                   Close a descriptor opened here")
	fmt.Println("  mkfifo <path> [mode]         Create a named pipe")
	fmt.Println("  signals                      List signals")
	fmt.Println("  trap <sig>                   Count deliveries of a signal")
	fmt.Println("  ignore <sig>                 Ignore a signal")
	fmt.Println("  default <sig>                Restore a signal's default action")
	fmt.Println("  traps                        Show delivery counts")
	fmt.Println("  kill <pid> <sig>             Send a signal")
	fmt.Println("  alarm <secs>|cancel          Set or cancel the process alarm")
	fmt.Println("  spawn <prog> [args...]       Start a child")
	fmt.Println("  wait [pid] [nohang]          Reap a child")
	fmt.Println("  status <raw>                 Decode a raw wait status")
	fmt.Println("  help                         Show this help")
	fmt.Println("  exit / quit / q              Exit")
}

func (r *REPL) cmdIDs() error {
	sid, err := unistd.Getsid(unistd.Self)
	if err != nil {
		return err
	}

	groups, err := unistd.Getgroups()
	if err != nil {
		return err
	}

	fmt.Printf("pid=%s ppid=%s pgrp=%s sid=%s\n", unistd.Getpid(), unistd.Getppid(), unistd.Getpgrp(), sid)
	fmt.Printf("uid=%s euid=%s gid=%s egid=%s\n", unistd.Getuid(), unistd.Geteuid(), unistd.Getgid(), unistd.Getegid())
	fmt.Printf("groups=%v\n", groups)

	return nil
}

func (r *REPL) cmdCwd(args []string) error {
	if len(args) > 0 {
		if err := unistd.Chdir(args[0]); err != nil {
			return err
		}
	}

	cwd, err := unistd.Getcwd()
	if err != nil {
		return err
	}

	fmt.Println(cwd)

	return nil
}

func (r *REPL) cmdPipe() error {
	rd, wr, err := unistd.Pipe()
	if err != nil {
		return err
	}

	r.open[rd.FD()] = rd
	r.open[wr.FD()] = wr

	fmt.Printf("read=%s write=%s\n", rd.FD(), wr.FD())

	return nil
}

func parseFD(s string) (fd.FD, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fd.Invalid, fmt.Errorf("invalid descriptor %q", s)
	}

	return fd.FromRaw(n), nil
}

func (r *REPL) cmdWrite(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: write <fd> <text>", errUsage)
	}

	f, err := parseFD(args[0])
	if err != nil {
		return err
	}

	n, err := unistd.Write(f, []byte(strings.Join(args[1:], " ")))
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d bytes\n", n)

	return nil
}

func (r *REPL) cmdRead(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: read <fd> [n]", errUsage)
	}

	f, err := parseFD(args[0])
	if err != nil {
		return err
	}

	size := 4096
	if len(args) > 1 {
		if size, err = strconv.Atoi(args[1]); err != nil || size <= 0 {
			return fmt.Errorf("invalid size %q", args[1])
		}
	}

	buf := make([]byte, size)

	n, err := errno.RetryEINTRValue(func() (int, error) { return unistd.Read(f, buf) })
	if err != nil {
		return err
	}

	fmt.Printf("%q\n", buf[:n])

	return nil
}

func (r *REPL) cmdSeek(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: seek <fd> <offset> [set|cur|end]", errUsage)
	}

	f, err := parseFD(args[0])
	if err != nil {
		return err
	}

	off, err := strconv.ParseInt(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("invalid offset %q", args[1])
	}

	whence := unistd.SeekSet

	if len(args) > 2 {
		switch args[2] {
		case "set":
		case "cur":
			whence = unistd.SeekCur
		case "end":
			whence = unistd.SeekEnd
		default:
			return fmt.Errorf("invalid whence %q", args[2])
		}
	}

	pos, err := unistd.Lseek(f, off, whence)
	if err != nil {
		return err
	}

	fmt.Println("offset", pos)

	return nil
}

func (r *REPL) cmdClose(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: close <fd>", errUsage)
	}

	f, err := parseFD(args[0])
	if err != nil {
		return err
	}

	owned, ok := r.open[f]
	if !ok {
		return fmt.Errorf("descriptor %s was not opened in this session", f)
	}

	delete(r.open, f)

	return owned.Close()
}

func (r *REPL) cmdMkfifo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: mkfifo <path> [mode]", errUsage)
	}

	mode := uint64(0o644)

	if len(args) > 1 {
		var err error
		if mode, err = strconv.ParseUint(args[1], 8, 32); err != nil {
			return fmt.Errorf("invalid mode %q", args[1])
		}
	}

	return unistd.Mkfifo(args[0], stat.ModeFromBitsTruncate(uint32(mode)))
}

func (r *REPL) cmdSignals() error {
	for _, s := range signal.Named() {
		catch := ""
		if !s.Catchable() {
			catch = " (uncatchable)"
		}

		fmt.Printf("%3d  %s%s\n", s.Raw(), s, catch)
	}

	return nil
}

func (r *REPL) cmdDisposition(args []string, kind string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: %s <sig>", errUsage, kind)
	}

	sig, err := signal.Parse(args[0])
	if err != nil {
		return err
	}

	var h signal.SigHandler

	switch kind {
	case "trap":
		h = signal.Handler(r.count)
	case "ignore":
		h = signal.SigIgn
	default:
		h = signal.SigDfl
	}

	prev, err := signal.SetHandler(sig, h)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s (was %s)\n", sig, h, prev)

	return nil
}

// count runs on the signal dispatcher goroutine.
func (r *REPL) count(sig signal.Signal) {
	r.mu.Lock()
	r.traps[sig]++
	r.mu.Unlock()
}

func (r *REPL) cmdTraps() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.traps) == 0 {
		fmt.Println("(no signals caught)")
		return
	}

	sigs := make([]signal.Signal, 0, len(r.traps))
	for s := range r.traps {
		sigs = append(sigs, s)
	}

	slices.Sort(sigs)

	for _, s := range sigs {
		fmt.Printf("%-10s %d\n", s, r.traps[s])
	}
}

func (r *REPL) cmdKill(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: kill <pid> <sig>", errUsage)
	}

	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pid %q", args[0])
	}

	sig, err := signal.Parse(args[1])
	if err != nil {
		return err
	}

	return signal.Kill(unistd.PidFromRaw(pid), sig)
}

func (r *REPL) cmdAlarm(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: alarm <secs>|cancel", errUsage)
	}

	var (
		prev    uint
		pending bool
		err     error
	)

	if args[0] == "cancel" {
		prev, pending, err = alarm.Cancel()
	} else {
		secs, parseErr := strconv.ParseUint(args[0], 10, 32)
		if parseErr != nil {
			return fmt.Errorf("invalid seconds %q", args[0])
		}

		prev, pending, err = alarm.Set(uint(secs))
	}

	if err != nil {
		return err
	}

	if pending {
		fmt.Printf("previous alarm had %ds left\n", prev)
	} else {
		fmt.Println("no alarm was pending")
	}

	return nil
}

func (r *REPL) cmdSpawn(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: spawn <prog> [args...]", errUsage)
	}

	path := args[0]
	if !strings.Contains(path, "/") {
		found, err := findInPath(path)
		if err != nil {
			return err
		}

		path = found
	}

	img, err := unistd.PrepareExecve(path, args, os.Environ())
	if err != nil {
		return err
	}

	pid, err := unistd.Spawn(img)
	if err != nil {
		return err
	}

	fmt.Println("spawned pid", pid)

	return nil
}

func findInPath(file string) (string, error) {
	for dir := range strings.SplitSeq(os.Getenv("PATH"), ":") {
		if dir == "" {
			dir = "."
		}

		candidate := filepath.Join(dir, file)
		if unistd.Access(candidate, unistd.X_OK) == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s: %w", file, errno.ENOENT)
}

func (r *REPL) cmdWait(args []string) error {
	pid := wait.AnyChild

	var flags wait.Flags

	for _, arg := range args {
		if arg == "nohang" {
			flags |= wait.WNOHANG
			continue
		}

		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid pid %q", arg)
		}

		pid = unistd.PidFromRaw(n)
	}

	status, err := wait.Waitpid(pid, flags|wait.WUNTRACED)
	if err != nil {
		return err
	}

	fmt.Println(status)

	return nil
}

func (r *REPL) cmdStatus(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: status <raw>", errUsage)
	}

	raw, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid raw status %q", args[0])
	}

	status, err := wait.Decode(0, uint32(raw))
	if err != nil {
		return err
	}

	fmt.Println(status)

	return nil
}

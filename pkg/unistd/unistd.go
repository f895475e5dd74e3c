// Package unistd wraps the process and descriptor calls of <unistd.h>:
// process, session and group ids, fork and the exec family, the working
// directory, pipes, seeking, links and the *at family.
//
// Every call is a direct system call on the calling goroutine's thread. Calls
// that fail return the bare errno (see package errno); none retries on EINTR.
//
// Process-wide state (working directory, ids, groups) is changed in place and
// is visible to every goroutine immediately. This package does not serialize
// concurrent changes; callers that change the working directory from several
// goroutines must coordinate themselves.
package unistd

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// Pid is a process id.
type Pid int

// Self is the "calling process" argument accepted by [Getsid], [Getpgid]
// and [Setpgid].
const Self Pid = 0

// PidFromRaw converts a raw process id.
func PidFromRaw(n int) Pid { return Pid(n) }

// Raw returns the process id as an int.
func (p Pid) Raw() int { return int(p) }

func (p Pid) String() string { return strconv.Itoa(int(p)) }

// Uid is a user id.
type Uid uint32

// UidFromRaw converts a raw user id.
func UidFromRaw(n uint32) Uid { return Uid(n) }

// Raw returns the user id as a uint32.
func (u Uid) Raw() uint32 { return uint32(u) }

// IsRoot reports whether u is the superuser.
func (u Uid) IsRoot() bool { return u == 0 }

func (u Uid) String() string { return strconv.FormatUint(uint64(u), 10) }

// Gid is a group id.
type Gid uint32

// GidFromRaw converts a raw group id.
func GidFromRaw(n uint32) Gid { return Gid(n) }

// Raw returns the group id as a uint32.
func (g Gid) Raw() uint32 { return uint32(g) }

func (g Gid) String() string { return strconv.FormatUint(uint64(g), 10) }

// Getpid returns the calling process id. It cannot fail.
func Getpid() Pid { return Pid(unix.Getpid()) }

// Getppid returns the parent process id. It cannot fail.
func Getppid() Pid { return Pid(unix.Getppid()) }

// Getsid returns the session id of pid, or of the calling process for [Self].
func Getsid(pid Pid) (Pid, error) {
	sid, err := unix.Getsid(int(pid))
	if err != nil {
		return 0, err
	}

	return Pid(sid), nil
}

// Setsid creates a new session led by the calling process and returns its id.
// It fails with EPERM when the caller already leads a process group.
func Setsid() (Pid, error) {
	sid, err := unix.Setsid()
	if err != nil {
		return 0, err
	}

	return Pid(sid), nil
}

// Getpgid returns the process group of pid, or of the calling process for
// [Self].
func Getpgid(pid Pid) (Pid, error) {
	pgid, err := unix.Getpgid(int(pid))
	if err != nil {
		return 0, err
	}

	return Pid(pgid), nil
}

// Setpgid moves pid into process group pgid. [Self] for pid means the calling
// process; [Self] for pgid means "a group named after pid".
func Setpgid(pid, pgid Pid) error {
	return unix.Setpgid(int(pid), int(pgid))
}

// Getpgrp returns the process group of the calling process.
func Getpgrp() Pid { return Pid(unix.Getpgrp()) }

// Getuid returns the real user id.
func Getuid() Uid { return Uid(unix.Getuid()) }

// Geteuid returns the effective user id.
func Geteuid() Uid { return Uid(unix.Geteuid()) }

// Getgid returns the real group id.
func Getgid() Gid { return Gid(unix.Getgid()) }

// Getegid returns the effective group id.
func Getegid() Gid { return Gid(unix.Getegid()) }

// Setuid sets the user ids of the process. On Linux the change applies to
// every thread.
func Setuid(uid Uid) error { return unix.Setuid(int(uid)) }

// Setgid sets the group ids of the process.
func Setgid(gid Gid) error { return unix.Setgid(int(gid)) }

// Getgroups returns the supplementary group ids of the calling process.
func Getgroups() ([]Gid, error) {
	raw, err := unix.Getgroups()
	if err != nil {
		return nil, err
	}

	out := make([]Gid, len(raw))
	for i, g := range raw {
		out[i] = Gid(g)
	}

	return out, nil
}

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package signal

import "golang.org/x/sys/unix"

const (
	SIGEMT  = Signal(unix.SIGEMT)
	SIGINFO = Signal(unix.SIGINFO)
)

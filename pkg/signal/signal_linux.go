package signal

import "golang.org/x/sys/unix"

const (
	SIGSTKFLT = Signal(unix.SIGSTKFLT)
	SIGPWR    = Signal(unix.SIGPWR)
)

// Linux numbers real-time signals up to 64.
const maxSignal Signal = 64

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package signal

// Values from <sys/signal.h>; identical across the BSDs and Darwin.
const (
	SA_ONSTACK   SaFlags = 0x0001
	SA_RESTART   SaFlags = 0x0002
	SA_RESETHAND SaFlags = 0x0004
	SA_NOCLDSTOP SaFlags = 0x0008
	SA_NODEFER   SaFlags = 0x0010
	SA_NOCLDWAIT SaFlags = 0x0020
	SA_SIGINFO   SaFlags = 0x0040
)

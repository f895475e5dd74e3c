//go:build linux && (mips || mipsle || mips64 || mips64le)

package signal

// Values from arch/mips/include/uapi/asm/signal.h.
const (
	SA_NOCLDSTOP SaFlags = 0x00000001
	SA_SIGINFO   SaFlags = 0x00000008
	SA_NOCLDWAIT SaFlags = 0x00010000
	SA_ONSTACK   SaFlags = 0x08000000
	SA_RESTART   SaFlags = 0x10000000
	SA_NODEFER   SaFlags = 0x40000000
	SA_RESETHAND SaFlags = 0x80000000
)

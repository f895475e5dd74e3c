package signal

import (
	"github.com/calvinalkan/posix/pkg/bitflags"
)

// SaFlags modify how a disposition installed by [Sigaction] behaves.
type SaFlags uint32

var saFlagsTable = bitflags.New("SaFlags",
	bitflags.Flag[SaFlags]{Name: "SA_NOCLDSTOP", Value: SA_NOCLDSTOP},
	bitflags.Flag[SaFlags]{Name: "SA_NOCLDWAIT", Value: SA_NOCLDWAIT},
	bitflags.Flag[SaFlags]{Name: "SA_SIGINFO", Value: SA_SIGINFO},
	bitflags.Flag[SaFlags]{Name: "SA_ONSTACK", Value: SA_ONSTACK},
	bitflags.Flag[SaFlags]{Name: "SA_RESTART", Value: SA_RESTART},
	bitflags.Flag[SaFlags]{Name: "SA_NODEFER", Value: SA_NODEFER},
	bitflags.Flag[SaFlags]{Name: "SA_RESETHAND", Value: SA_RESETHAND},
)

// unsupportedSaFlags need a handler running in signal context or change how
// the kernel treats children behind the Go runtime's back.
const unsupportedSaFlags = SA_SIGINFO | SA_NOCLDSTOP | SA_NOCLDWAIT

// SaFlagsTable describes the flags known on this platform.
func SaFlagsTable() *bitflags.Table[SaFlags] { return saFlagsTable }

// SaFlagsFromBits rejects bits this platform does not define.
func SaFlagsFromBits(bits uint32) (SaFlags, error) {
	return saFlagsTable.FromBits(SaFlags(bits))
}

// SaFlagsFromBitsTruncate drops bits this platform does not define.
func SaFlagsFromBitsTruncate(bits uint32) SaFlags {
	return saFlagsTable.Truncate(SaFlags(bits))
}

func (f SaFlags) Bits() uint32 { return uint32(f) }

func (f SaFlags) Contains(other SaFlags) bool { return bitflags.Contains(f, other) }

func (f SaFlags) Intersects(other SaFlags) bool { return bitflags.Intersects(f, other) }

func (f SaFlags) String() string { return saFlagsTable.Format(f) }

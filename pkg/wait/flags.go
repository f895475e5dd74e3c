package wait

import (
	"github.com/calvinalkan/posix/pkg/bitflags"

	"golang.org/x/sys/unix"
)

// Flags select which state changes [Waitpid] reports and whether it blocks.
type Flags uint32

const (
	WNOHANG    Flags = unix.WNOHANG
	WUNTRACED  Flags = unix.WUNTRACED
	WCONTINUED Flags = unix.WCONTINUED
)

var flagsTable = bitflags.New("WaitFlags", flagList...)

// FlagsTable describes the flags known on this platform.
func FlagsTable() *bitflags.Table[Flags] { return flagsTable }

// FlagsFromBits rejects bits this platform does not define.
func FlagsFromBits(bits uint32) (Flags, error) {
	return flagsTable.FromBits(Flags(bits))
}

// FlagsFromBitsTruncate drops bits this platform does not define.
func FlagsFromBitsTruncate(bits uint32) Flags {
	return flagsTable.Truncate(Flags(bits))
}

func (f Flags) Bits() uint32 { return uint32(f) }

func (f Flags) Contains(other Flags) bool { return bitflags.Contains(f, other) }

func (f Flags) Intersects(other Flags) bool { return bitflags.Intersects(f, other) }

func (f Flags) String() string { return flagsTable.Format(f) }

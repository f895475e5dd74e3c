package fcntl

import (
	"github.com/calvinalkan/posix/pkg/bitflags"

	"golang.org/x/sys/unix"
)

// OFlag is the flag set accepted by open(2), fcntl(F_SETFL) and pipe2(2).
type OFlag int

// Flags defined on every supported platform. Platform-specific flags live in
// oflag_<os>.go.
const (
	O_RDONLY    OFlag = unix.O_RDONLY
	O_WRONLY    OFlag = unix.O_WRONLY
	O_RDWR      OFlag = unix.O_RDWR
	O_APPEND    OFlag = unix.O_APPEND
	O_CREAT     OFlag = unix.O_CREAT
	O_EXCL      OFlag = unix.O_EXCL
	O_NOCTTY    OFlag = unix.O_NOCTTY
	O_NONBLOCK  OFlag = unix.O_NONBLOCK
	O_SYNC      OFlag = unix.O_SYNC
	O_TRUNC     OFlag = unix.O_TRUNC
	O_CLOEXEC   OFlag = unix.O_CLOEXEC
	O_DIRECTORY OFlag = unix.O_DIRECTORY
	O_NOFOLLOW  OFlag = unix.O_NOFOLLOW
	O_ASYNC     OFlag = unix.O_ASYNC

	// O_ACCMODE masks the access mode (O_RDONLY, O_WRONLY, O_RDWR).
	O_ACCMODE OFlag = unix.O_ACCMODE
)

var oflagTable = bitflags.New("OFlag", oflagList...)

// OFlagTable returns the flag table of [OFlag].
func OFlagTable() *bitflags.Table[OFlag] { return oflagTable }

// OFlagFromBits validates bits against the platform's open flags.
func OFlagFromBits(bits int) (OFlag, error) { return oflagTable.FromBits(OFlag(bits)) }

// OFlagFromBitsTruncate drops bits the platform does not define.
func OFlagFromBitsTruncate(bits int) OFlag { return oflagTable.Truncate(OFlag(bits)) }

func (f OFlag) Bits() int { return int(f) }

func (f OFlag) Contains(other OFlag) bool { return bitflags.Contains(f, other) }

func (f OFlag) Intersects(other OFlag) bool { return bitflags.Intersects(f, other) }

// AccessMode returns only the O_ACCMODE part of f.
func (f OFlag) AccessMode() OFlag { return f & O_ACCMODE }

func (f OFlag) String() string { return oflagTable.Format(f) }

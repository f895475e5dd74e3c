package fcntl

import (
	"fmt"

	"github.com/calvinalkan/posix/pkg/bitflags"
	"github.com/calvinalkan/posix/pkg/errno"

	"golang.org/x/sys/unix"
)

// AtFlags is the flag set of the *at family (linkat, unlinkat, faccessat,
// execveat, fstatat). Each operation accepts only a subset; the wrappers
// reject the others before calling into the kernel.
type AtFlags int

const (
	AT_SYMLINK_NOFOLLOW AtFlags = unix.AT_SYMLINK_NOFOLLOW
	AT_SYMLINK_FOLLOW   AtFlags = unix.AT_SYMLINK_FOLLOW
	AT_REMOVEDIR        AtFlags = unix.AT_REMOVEDIR
	AT_EACCESS          AtFlags = unix.AT_EACCESS
)

var atFlagsTable = bitflags.New("AtFlags", atFlagsList...)

// AtFlagsTable returns the flag table of [AtFlags].
func AtFlagsTable() *bitflags.Table[AtFlags] { return atFlagsTable }

// AtFlagsFromBits validates bits against the platform's AT_* flags.
func AtFlagsFromBits(bits int) (AtFlags, error) { return atFlagsTable.FromBits(AtFlags(bits)) }

// AtFlagsFromBitsTruncate drops bits the platform does not define.
func AtFlagsFromBitsTruncate(bits int) AtFlags { return atFlagsTable.Truncate(AtFlags(bits)) }

func (f AtFlags) Bits() int { return int(f) }

func (f AtFlags) Contains(other AtFlags) bool { return bitflags.Contains(f, other) }

func (f AtFlags) String() string { return atFlagsTable.Format(f) }

// CheckAt rejects flags outside allowed for the operation op.
func CheckAt(op string, flags, allowed AtFlags) error {
	if extra := flags &^ allowed; extra != 0 {
		return fmt.Errorf("%w: %s does not accept %s", errno.ErrInvalidInput, op, extra)
	}

	return nil
}

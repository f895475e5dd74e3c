package signal

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// The thread mask functions act on the calling OS thread. Lock the goroutine
// with runtime.LockOSThread first, or the change applies to whichever thread
// the goroutine happens to run on. The Go runtime may refuse to block
// signals it depends on.

// ThreadBlock adds set to the calling thread's signal mask.
func ThreadBlock(set SigSet) error {
	s := set.toUnix()
	return unix.PthreadSigmask(unix.SIG_BLOCK, &s, nil)
}

// ThreadUnblock removes set from the calling thread's signal mask.
func ThreadUnblock(set SigSet) error {
	s := set.toUnix()
	return unix.PthreadSigmask(unix.SIG_UNBLOCK, &s, nil)
}

// ThreadSetMask replaces the calling thread's signal mask with set.
func ThreadSetMask(set SigSet) error {
	s := set.toUnix()
	return unix.PthreadSigmask(unix.SIG_SETMASK, &s, nil)
}

// ThreadSwapMask replaces the calling thread's signal mask with set and
// returns the previous mask.
func ThreadSwapMask(set SigSet) (SigSet, error) {
	var old unix.Sigset_t

	s := set.toUnix()
	if err := unix.PthreadSigmask(unix.SIG_SETMASK, &s, &old); err != nil {
		return SigSet{}, err
	}

	return fromUnix(&old), nil
}

// ThreadMask returns the calling thread's signal mask.
func ThreadMask() (SigSet, error) {
	var old unix.Sigset_t

	if err := unix.PthreadSigmask(unix.SIG_BLOCK, nil, &old); err != nil {
		return SigSet{}, err
	}

	return fromUnix(&old), nil
}

func (s SigSet) toUnix() unix.Sigset_t {
	var set unix.Sigset_t

	wordBits := int(unsafe.Sizeof(set.Val[0])) * 8

	for sig := range s.All() {
		i := int(sig) - 1
		set.Val[i/wordBits] |= 1 << (i % wordBits)
	}

	return set
}

func fromUnix(set *unix.Sigset_t) SigSet {
	var s SigSet

	wordBits := int(unsafe.Sizeof(set.Val[0])) * 8

	for sig := Signal(1); sig <= Max; sig++ {
		i := int(sig) - 1
		if set.Val[i/wordBits]&(1<<(i%wordBits)) != 0 {
			s.set(sig)
		}
	}

	return s
}

package signal

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// SigSet is a set of signals. The zero value is the empty set.
//
// SigSet is a value type: Union and Intersection return new sets, Add and
// Remove modify the receiver.
type SigSet struct {
	bits [2]uint64
}

// Empty returns the empty set.
func Empty() SigSet { return SigSet{} }

// Full returns the set of every signal of the platform.
func Full() SigSet {
	var s SigSet

	for sig := Signal(1); sig <= Max; sig++ {
		s.set(sig)
	}

	return s
}

// SigSetOf returns the set containing sigs.
func SigSetOf(sigs ...Signal) (SigSet, error) {
	var s SigSet

	for _, sig := range sigs {
		if err := s.Add(sig); err != nil {
			return SigSet{}, err
		}
	}

	return s, nil
}

// Add inserts sig. It fails with [ErrInvalidSignal] when sig is outside
// 1..[Max].
func (s *SigSet) Add(sig Signal) error {
	if !sig.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSignal, int(sig))
	}

	s.set(sig)

	return nil
}

// Remove deletes sig. Removing an absent or invalid signal is a no-op.
func (s *SigSet) Remove(sig Signal) {
	if !sig.Valid() {
		return
	}

	i := sig - 1
	s.bits[i/64] &^= 1 << (i % 64)
}

// Contains reports whether sig is in s.
func (s SigSet) Contains(sig Signal) bool {
	if !sig.Valid() {
		return false
	}

	i := sig - 1

	return s.bits[i/64]&(1<<(i%64)) != 0
}

// Union returns the signals in s or other.
func (s SigSet) Union(other SigSet) SigSet {
	return SigSet{bits: [2]uint64{s.bits[0] | other.bits[0], s.bits[1] | other.bits[1]}}
}

// Intersection returns the signals in both s and other.
func (s SigSet) Intersection(other SigSet) SigSet {
	return SigSet{bits: [2]uint64{s.bits[0] & other.bits[0], s.bits[1] & other.bits[1]}}
}

// Len returns the number of signals in s.
func (s SigSet) Len() int {
	return bits.OnesCount64(s.bits[0]) + bits.OnesCount64(s.bits[1])
}

// IsEmpty reports whether s has no signals.
func (s SigSet) IsEmpty() bool { return s.bits == [2]uint64{} }

// All yields the signals of s in ascending order.
func (s SigSet) All() iter.Seq[Signal] {
	return func(yield func(Signal) bool) {
		for sig := Signal(1); sig <= Max; sig++ {
			if s.Contains(sig) && !yield(sig) {
				return
			}
		}
	}
}

// String formats s as "{SIGINT, SIGTERM}".
func (s SigSet) String() string {
	names := make([]string, 0, s.Len())

	for sig := range s.All() {
		names = append(names, sig.String())
	}

	return "{" + strings.Join(names, ", ") + "}"
}

func (s *SigSet) set(sig Signal) {
	i := sig - 1
	s.bits[i/64] |= 1 << (i % 64)
}

// Package bitflags builds typed flag sets on top of integer newtypes.
//
// Each wrapper package declares its flag type (for example fcntl.OFlag) and a
// [Table] listing the named bits the target platform defines. The table
// provides the two constructors every flag set needs:
//
//   - [Table.FromBits] rejects values with undefined bits.
//   - [Table.Truncate] silently drops undefined bits.
//
// plus formatting and parsing of "A|B|0x40" strings. Union, intersection and
// difference are the ordinary |, & and &^ operators on the flag type.
package bitflags

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/calvinalkan/posix/pkg/errno"
)

// ErrUnknownBits is returned by [Table.FromBits] and [Table.Parse] when a value
// contains bits, or names, the flag set does not define.
//
// It wraps [errno.ErrInvalidInput].
var ErrUnknownBits = fmt.Errorf("%w: unknown flag bits", errno.ErrInvalidInput)

// Integer is the set of underlying types a flag set can have.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Flag is one named value of a flag set. A value may cover several bits
// (for example O_SYNC on Linux includes O_DSYNC).
type Flag[T Integer] struct {
	Name  string
	Value T
}

// Table describes the named flags of one flag type.
//
// Tables are built once at package init and are read-only afterwards, so they
// are safe for concurrent use.
type Table[T Integer] struct {
	kind  string
	flags []Flag[T]
	all   T
}

// New creates a table for the flag set kind (used in error messages).
//
// Zero-valued flags (for example O_RDONLY) are kept for [Table.Parse] but are
// never printed by [Table.Format], since they are contained in every value.
// Flags are matched in the order given; list multi-bit flags before the
// single bits they include.
func New[T Integer](kind string, flags ...Flag[T]) *Table[T] {
	t := &Table[T]{kind: kind, flags: make([]Flag[T], 0, len(flags))}

	for _, f := range flags {
		t.flags = append(t.flags, f)
		t.all |= f.Value
	}

	return t
}

// Kind returns the name of the flag set.
func (t *Table[T]) Kind() string { return t.kind }

// All returns the union of every defined flag.
func (t *Table[T]) All() T { return t.all }

// Flags returns a copy of the defined flags in declaration order.
func (t *Table[T]) Flags() []Flag[T] {
	out := make([]Flag[T], len(t.flags))
	copy(out, t.flags)

	return out
}

// Unknown returns the bits of v that no flag defines.
func (t *Table[T]) Unknown(v T) T {
	return v &^ t.all
}

// FromBits returns v if every bit in it is defined, or an error wrapping
// [ErrUnknownBits].
func (t *Table[T]) FromBits(v T) (T, error) {
	if unknown := t.Unknown(v); unknown != 0 {
		return 0, fmt.Errorf("%w: %s %s", ErrUnknownBits, t.kind, hex(unknown))
	}

	return v, nil
}

// Truncate returns v with every undefined bit cleared.
func (t *Table[T]) Truncate(v T) T {
	return v & t.all
}

// Names returns the names of the flags contained in v, matching greedily in
// declaration order: once a flag matched, its bits are not matched again.
// Zero-valued flags are never returned.
func (t *Table[T]) Names(v T) []string {
	names, _ := t.split(v)
	return names
}

// Format renders v as "NAME|NAME|0x..", with undefined bits as a trailing hex
// literal. The zero value renders as the zero-valued flag's name if there is
// one, else "0".
func (t *Table[T]) Format(v T) string {
	if v == 0 {
		for _, f := range t.flags {
			if f.Value == 0 {
				return f.Name
			}
		}

		return "0"
	}

	parts, remaining := t.split(v)
	if remaining != 0 {
		parts = append(parts, hex(remaining))
	}

	return strings.Join(parts, "|")
}

func (t *Table[T]) split(v T) ([]string, T) {
	names := make([]string, 0, bits.OnesCount64(uint64(v)))
	remaining := v

	for _, f := range t.flags {
		if f.Value == 0 || f.Value&remaining != f.Value {
			continue
		}

		names = append(names, f.Name)
		remaining &^= f.Value
	}

	return names, remaining
}

// Parse is the inverse of [Table.Format]. It accepts flag names and numeric
// literals (decimal, 0x hex, 0o/leading-zero octal) separated by "|" and
// surrounding whitespace. Names are case-sensitive. Numeric parts must only
// contain defined bits.
func (t *Table[T]) Parse(s string) (T, error) {
	var v T

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty %s", errno.ErrInvalidInput, t.kind)
	}

	for part := range strings.SplitSeq(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, fmt.Errorf("%w: empty element in %s %q", errno.ErrInvalidInput, t.kind, s)
		}

		if f, ok := t.lookup(part); ok {
			v |= f.Value
			continue
		}

		n, err := strconv.ParseInt(part, 0, 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrSyntax) {
				return 0, fmt.Errorf("%w: %s has no flag %q", ErrUnknownBits, t.kind, part)
			}

			return 0, fmt.Errorf("%w: %s %q: %w", errno.ErrInvalidInput, t.kind, part, err)
		}

		bitsVal, err := t.FromBits(T(n))
		if err != nil {
			return 0, err
		}

		v |= bitsVal
	}

	return v, nil
}

func (t *Table[T]) lookup(name string) (Flag[T], bool) {
	for _, f := range t.flags {
		if f.Name == name {
			return f, true
		}
	}

	return Flag[T]{}, false
}

// Contains reports whether every bit of want is set in v.
func Contains[T Integer](v, want T) bool {
	return v&want == want
}

// Intersects reports whether v and other share at least one bit.
func Intersects[T Integer](v, other T) bool {
	return v&other != 0
}

func hex[T Integer](v T) string {
	if v < 0 {
		return "-0x" + strconv.FormatUint(uint64(-int64(v)), 16)
	}

	return "0x" + strconv.FormatUint(uint64(v), 16)
}

package bitflags_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/posix/pkg/bitflags"
	"github.com/calvinalkan/posix/pkg/errno"
)

type testFlag uint32

const (
	flagNone  testFlag = 0
	flagRead  testFlag = 0x1
	flagWrite testFlag = 0x2
	flagSync  testFlag = 0x14 // includes flagDsync
	flagDsync testFlag = 0x04
)

var testTable = bitflags.New("testFlag",
	bitflags.Flag[testFlag]{Name: "NONE", Value: flagNone},
	bitflags.Flag[testFlag]{Name: "READ", Value: flagRead},
	bitflags.Flag[testFlag]{Name: "WRITE", Value: flagWrite},
	bitflags.Flag[testFlag]{Name: "SYNC", Value: flagSync},
	bitflags.Flag[testFlag]{Name: "DSYNC", Value: flagDsync},
)

func Test_FromBits_Accepts_Value_When_All_Bits_Defined(t *testing.T) {
	t.Parallel()

	got, err := testTable.FromBits(flagRead | flagSync)
	require.NoError(t, err)
	assert.Equal(t, flagRead|flagSync, got)
}

func Test_FromBits_Returns_ErrUnknownBits_When_Undefined_Bit_Set(t *testing.T) {
	t.Parallel()

	_, err := testTable.FromBits(flagRead | 0x100)
	require.ErrorIs(t, err, bitflags.ErrUnknownBits)
	require.ErrorIs(t, err, errno.ErrInvalidInput)
	assert.Contains(t, err.Error(), "0x100")
}

func Test_Truncate_Drops_Undefined_Bits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, flagWrite, testTable.Truncate(flagWrite|0x300))
	assert.Equal(t, testFlag(0x100), testTable.Unknown(flagWrite|0x100))
}

func Test_Format_Matches_Greedily_In_Declaration_Order(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   testFlag
		want string
	}{
		{0, "NONE"},
		{flagRead, "READ"},
		{flagRead | flagWrite, "READ|WRITE"},
		{flagSync, "SYNC"},
		{flagDsync, "DSYNC"},
		{flagSync | flagRead, "READ|SYNC"},
		{flagWrite | 0x80, "WRITE|0x80"},
	}

	for _, tt := range tests {
		if got := testTable.Format(tt.in); got != tt.want {
			t.Fatalf("Format(%#x)=%q, want %q", uint32(tt.in), got, tt.want)
		}
	}
}

func Test_Parse_Inverts_Format_When_Value_Defined(t *testing.T) {
	t.Parallel()

	all := testTable.All()

	// Every subset of the defined bits must round-trip.
	for v := testFlag(0); v <= all; v++ {
		if testTable.Unknown(v) != 0 {
			continue
		}

		s := testTable.Format(v)

		got, err := testTable.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): err=%v", s, err)
		}

		if got != v {
			t.Fatalf("Parse(Format(%#x))=%#x, want %#x", uint32(v), uint32(got), uint32(v))
		}

		fromBits, err := testTable.FromBits(v)
		if err != nil || fromBits != v {
			t.Fatalf("FromBits(%#x)=(%#x, %v), want (%#x, nil)", uint32(v), uint32(fromBits), err, uint32(v))
		}
	}
}

func Test_Parse_Accepts_Numbers_And_Whitespace(t *testing.T) {
	t.Parallel()

	got, err := testTable.Parse(" READ | 0x2 ")
	require.NoError(t, err)
	assert.Equal(t, flagRead|flagWrite, got)
}

func Test_Parse_Rejects_Unknown_Names_And_Bits(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"READ|BOGUS", "0x100", "", "READ||WRITE"} {
		_, err := testTable.Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q): err=nil, want error", in)
		}

		require.ErrorIs(t, err, errno.ErrInvalidInput, "Parse(%q)", in)
	}
}

func Test_Names_Skips_Zero_Flag(t *testing.T) {
	t.Parallel()

	got := testTable.Names(flagRead | flagDsync)
	if diff := cmp.Diff([]string{"READ", "DSYNC"}, got); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, testTable.Names(0))
}

func Test_Contains_And_Intersects(t *testing.T) {
	t.Parallel()

	v := flagRead | flagSync
	assert.True(t, bitflags.Contains(v, flagDsync))
	assert.False(t, bitflags.Contains(v, flagWrite|flagRead))
	assert.True(t, bitflags.Intersects(v, flagWrite|flagRead))
	assert.False(t, bitflags.Intersects(v, flagWrite))
}

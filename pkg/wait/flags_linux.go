package wait

import (
	"github.com/calvinalkan/posix/pkg/bitflags"

	"golang.org/x/sys/unix"
)

const (
	WNOTHREAD Flags = unix.WNOTHREAD
	WALL      Flags = unix.WALL
	WCLONE    Flags = unix.WCLONE
)

var flagList = []bitflags.Flag[Flags]{
	{Name: "WNOHANG", Value: WNOHANG},
	{Name: "WUNTRACED", Value: WUNTRACED},
	{Name: "WCONTINUED", Value: WCONTINUED},
	{Name: "__WNOTHREAD", Value: WNOTHREAD},
	{Name: "__WALL", Value: WALL},
	{Name: "__WCLONE", Value: WCLONE},
}

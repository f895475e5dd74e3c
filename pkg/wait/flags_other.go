//go:build !linux

package wait

import "github.com/calvinalkan/posix/pkg/bitflags"

var flagList = []bitflags.Flag[Flags]{
	{Name: "WNOHANG", Value: WNOHANG},
	{Name: "WUNTRACED", Value: WUNTRACED},
	{Name: "WCONTINUED", Value: WCONTINUED},
}

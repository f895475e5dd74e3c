//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package unistd

import (
	"strconv"

	"github.com/tklauser/go-sysconf"
)

// SysconfVar names a runtime limit or option reported by sysconf(3).
type SysconfVar int

const (
	SC_ARG_MAX          SysconfVar = sysconf.SC_ARG_MAX
	SC_CHILD_MAX        SysconfVar = sysconf.SC_CHILD_MAX
	SC_CLK_TCK          SysconfVar = sysconf.SC_CLK_TCK
	SC_NGROUPS_MAX      SysconfVar = sysconf.SC_NGROUPS_MAX
	SC_OPEN_MAX         SysconfVar = sysconf.SC_OPEN_MAX
	SC_PAGESIZE         SysconfVar = sysconf.SC_PAGESIZE
	SC_NPROCESSORS_CONF SysconfVar = sysconf.SC_NPROCESSORS_CONF
	SC_NPROCESSORS_ONLN SysconfVar = sysconf.SC_NPROCESSORS_ONLN
)

var sysconfNames = map[SysconfVar]string{
	SC_ARG_MAX:          "SC_ARG_MAX",
	SC_CHILD_MAX:        "SC_CHILD_MAX",
	SC_CLK_TCK:          "SC_CLK_TCK",
	SC_NGROUPS_MAX:      "SC_NGROUPS_MAX",
	SC_OPEN_MAX:         "SC_OPEN_MAX",
	SC_PAGESIZE:         "SC_PAGESIZE",
	SC_NPROCESSORS_CONF: "SC_NPROCESSORS_CONF",
	SC_NPROCESSORS_ONLN: "SC_NPROCESSORS_ONLN",
}

func (v SysconfVar) String() string {
	if name, ok := sysconfNames[v]; ok {
		return name
	}

	return "SysconfVar(" + strconv.Itoa(int(v)) + ")"
}

// Sysconf returns the value of a system limit. limited is false when the
// system imposes no limit (sysconf(3) returning -1 without an error).
func Sysconf(name SysconfVar) (value int64, limited bool, err error) {
	v, err := sysconf.Sysconf(int(name))
	if err != nil {
		return 0, false, err
	}

	if v == -1 {
		return 0, false, nil
	}

	return v, true, nil
}

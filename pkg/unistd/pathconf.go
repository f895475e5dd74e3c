//go:build linux || dragonfly || freebsd || netbsd

package unistd

import (
	"fmt"
	"strconv"

	"github.com/calvinalkan/posix/pkg/errno"
)

// PathconfVar names a limit of a file or directory reported by pathconf(3).
type PathconfVar int

var pathconfNames = map[PathconfVar]string{
	PC_LINK_MAX:         "PC_LINK_MAX",
	PC_MAX_CANON:        "PC_MAX_CANON",
	PC_MAX_INPUT:        "PC_MAX_INPUT",
	PC_NAME_MAX:         "PC_NAME_MAX",
	PC_PATH_MAX:         "PC_PATH_MAX",
	PC_PIPE_BUF:         "PC_PIPE_BUF",
	PC_CHOWN_RESTRICTED: "PC_CHOWN_RESTRICTED",
	PC_NO_TRUNC:         "PC_NO_TRUNC",
	PC_VDISABLE:         "PC_VDISABLE",
}

func (v PathconfVar) String() string {
	if name, ok := pathconfNames[v]; ok {
		return name
	}

	return "PathconfVar(" + strconv.Itoa(int(v)) + ")"
}

func checkPathconf(op string, name PathconfVar) error {
	if _, ok := pathconfNames[name]; !ok {
		return fmt.Errorf("%w: %s variable %d", errno.ErrInvalidInput, op, int(name))
	}

	return nil
}

package cli

import (
	"errors"
	"strconv"
)

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrProgramRequired    = errors.New("program is required")
	ErrProgramNotFound    = errors.New("program not found in PATH")
	ErrPathRequired       = errors.New("path is required")
	ErrRawStatusRequired  = errors.New("raw status is required")
	ErrUnknownFlagSet     = errors.New("unknown flag set")
	ErrUnsupported        = errors.New("not supported on this platform")
)

// exitError carries a child's exit code through Command.Run without an
// "error:" line.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "exit status " + strconv.Itoa(e.code) }

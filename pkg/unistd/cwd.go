package unistd

import (
	"github.com/calvinalkan/posix/pkg/fd"

	"golang.org/x/sys/unix"
)

// Chdir changes the working directory of the process.
func Chdir(path string) error { return unix.Chdir(path) }

// Fchdir changes the working directory to the directory open at dir.
func Fchdir(dir fd.FD) error { return unix.Fchdir(dir.Raw()) }

// Getcwd returns the absolute path of the working directory.
func Getcwd() (string, error) { return unix.Getwd() }

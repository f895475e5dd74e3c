//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package unistd

import "github.com/calvinalkan/posix/pkg/fcntl"

const linkatFlags = fcntl.AT_SYMLINK_FOLLOW

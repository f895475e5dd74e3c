package unistd

import "github.com/calvinalkan/posix/pkg/fcntl"

const pipe2Flags = fcntl.O_CLOEXEC | fcntl.O_NONBLOCK | fcntl.O_DIRECT

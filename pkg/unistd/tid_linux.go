package unistd

import "golang.org/x/sys/unix"

// Gettid returns the kernel thread id of the calling thread. Goroutines move
// between threads; lock the goroutine with runtime.LockOSThread for the id to
// stay meaningful.
func Gettid() Pid { return Pid(unix.Gettid()) }

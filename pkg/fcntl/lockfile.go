package fcntl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fd"
	"github.com/calvinalkan/posix/pkg/stat"
)

var (
	// ErrWouldBlock is returned when a lock cannot be acquired without waiting.
	//
	// It is returned by [TryLockFile] when the lock is held by another open
	// file description, and by [LockFile] when the timeout expires.
	ErrWouldBlock = errors.New("lock would block")

	// errInodeMismatch indicates the lock file was replaced between open and
	// flock. Callers retry.
	errInodeMismatch = errors.New("inode mismatch")
)

// LockOptions configures [LockFile].
type LockOptions struct {
	// Shared takes a shared lock (opened O_RDONLY) instead of an exclusive
	// one (opened O_RDWR).
	Shared bool

	// Timeout bounds how long to wait. Zero blocks in the kernel without a
	// timeout; a positive value polls with LOCK_NB and backoff.
	Timeout time.Duration
}

// Held is an acquired lock file. Call [Held.Close] to release it.
type Held struct {
	mu   sync.Mutex
	file *fd.Owned
	path string
}

// FD returns the locked descriptor, or [fd.Invalid] after Close.
func (h *Held) FD() fd.FD {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return fd.Invalid
	}

	return h.file.FD()
}

// Path returns the path the lock was taken on.
func (h *Held) Path() string { return h.path }

// Close releases the lock and closes the descriptor.
//
// Close is idempotent - calling it multiple times is safe and subsequent calls
// return nil. If both unlocking and closing fail, the returned error wraps
// both (see [errors.Join]).
func (h *Held) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}

	unlockErr := errno.RetryEINTR(func() error { return Flock(h.file.FD(), Unlock) })
	closeErr := h.file.Close()
	h.file = nil

	if unlockErr != nil {
		unlockErr = fmt.Errorf("unlocking %s: %w", h.path, unlockErr)
	}

	if closeErr != nil {
		closeErr = fmt.Errorf("closing lock fd: %w", closeErr)
	}

	return errors.Join(unlockErr, closeErr)
}

// LockFile acquires a flock(2) lock on the file at path, creating the file
// and its parent directories when missing.
//
// flock locks an inode, not a pathname. After acquiring, LockFile checks that
// the descriptor still refers to the file currently at path and retries if
// the file was replaced while waiting. Replacing the file after LockFile
// returns defeats the lock; keep lock files stable on disk.
//
// With a positive timeout, an expired wait returns an error wrapping
// [ErrWouldBlock].
func LockFile(path string, opts LockOptions) (*Held, error) {
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("%w: lock timeout %s must be >= 0", errno.ErrInvalidInput, opts.Timeout)
	}

	if opts.Timeout == 0 {
		return lockBlocking(path, opts.Shared)
	}

	return lockPolling(path, opts.Shared, opts.Timeout)
}

// TryLockFile attempts to acquire the lock once without waiting and returns
// [ErrWouldBlock] when it is held elsewhere.
func TryLockFile(path string, shared bool) (*Held, error) {
	return lockPolling(path, shared, 0)
}

func lockBlocking(path string, shared bool) (*Held, error) {
	for {
		file, err := openLockFile(path, shared)
		if err != nil {
			return nil, fmt.Errorf("opening lockfile: %w", err)
		}

		err = acquire(file, path, lockArg(shared, false))
		if err == nil {
			return &Held{file: file, path: path}, nil
		}

		_ = file.Close()

		if errors.Is(err, errInodeMismatch) {
			continue
		}

		return nil, err
	}
}

// lockPolling uses LOCK_NB with retries.
//
//   - timeout == 0: try once
//   - timeout > 0: retry with backoff (1ms doubling to 25ms) until timeout
func lockPolling(path string, shared bool, timeout time.Duration) (*Held, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	backoff := time.Millisecond

	for {
		file, err := openLockFile(path, shared)
		if err != nil {
			return nil, fmt.Errorf("opening lockfile: %w", err)
		}

		err = acquire(file, path, lockArg(shared, true))
		if err == nil {
			return &Held{file: file, path: path}, nil
		}

		_ = file.Close()

		if !errors.Is(err, ErrWouldBlock) && !errors.Is(err, errInodeMismatch) {
			return nil, err
		}

		if timeout == 0 {
			return nil, fmt.Errorf("%w: %s", ErrWouldBlock, path)
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %s: timed out after %s", ErrWouldBlock, path, timeout)
		}

		time.Sleep(min(backoff, remaining))

		backoff = min(backoff*2, 25*time.Millisecond)
	}
}

// acquire flocks file and verifies the inode still matches path. On failure
// the file is unlocked but not closed.
func acquire(file *fd.Owned, path string, arg FlockArg) error {
	f := file.FD()

	if err := errno.RetryEINTR(func() error { return Flock(f, arg) }); err != nil {
		if errno.IsWouldBlock(err) {
			return ErrWouldBlock
		}

		return fmt.Errorf("flock %s: %w", arg, err)
	}

	match, err := inodeMatchesPath(path, f)
	if err != nil || !match {
		_ = errno.RetryEINTR(func() error { return Flock(f, Unlock) })

		if err != nil && !errors.Is(err, errno.ENOENT) {
			return fmt.Errorf("verifying inode match: %w", err)
		}

		return errInodeMismatch
	}

	return nil
}

const (
	lockFilePerm = 0o600
	lockDirPerm  = 0o755
)

func openLockFile(path string, shared bool) (*fd.Owned, error) {
	flags := O_RDWR | O_CREAT | O_CLOEXEC
	if shared {
		flags = O_RDONLY | O_CREAT | O_CLOEXEC
	}

	f, err := Open(path, flags, lockFilePerm)
	if err == nil || !errors.Is(err, errno.ENOENT) {
		return f, err
	}

	if err := os.MkdirAll(filepath.Dir(path), lockDirPerm); err != nil {
		return nil, err
	}

	return Open(path, flags, lockFilePerm)
}

// inodeMatchesPath compares (dev, ino) of the open descriptor with the file
// currently at path.
func inodeMatchesPath(path string, f fd.FD) (bool, error) {
	open, err := stat.Fstat(f)
	if err != nil {
		return false, err
	}

	cur, err := stat.Stat(path)
	if err != nil {
		return false, err
	}

	return open.Dev == cur.Dev && open.Ino == cur.Ino, nil
}

func lockArg(shared, nonblock bool) FlockArg {
	switch {
	case shared && nonblock:
		return LockSharedNonblock
	case shared:
		return LockShared
	case nonblock:
		return LockExclusiveNonblock
	default:
		return LockExclusive
	}
}

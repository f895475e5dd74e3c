package fcntl_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calvinalkan/posix/pkg/errno"
	"github.com/calvinalkan/posix/pkg/fcntl"
)

func Test_TryLockFile_Returns_ErrWouldBlock_When_Path_Is_Locked(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lock")

	lock1, err := fcntl.TryLockFile(path, false)
	if err != nil {
		t.Fatalf("TryLockFile(%q): %v", path, err)
	}
	t.Cleanup(func() { _ = lock1.Close() })

	lock2, err := fcntl.TryLockFile(path, false)
	if !errors.Is(err, fcntl.ErrWouldBlock) {
		t.Fatalf("TryLockFile(%q) while locked: err=%v, want %v", path, err, fcntl.ErrWouldBlock)
	}
	if lock2 != nil {
		_ = lock2.Close()
		t.Fatalf("TryLockFile(%q) while locked: want lock=nil, got non-nil", path)
	}

	if err := lock1.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	lock3, err := fcntl.TryLockFile(path, false)
	if err != nil {
		t.Fatalf("TryLockFile(%q) after release: %v", path, err)
	}
	if err := lock3.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}
}

func Test_LockFile_Returns_ErrWouldBlock_When_Timeout_Expires(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lock")

	lock1, err := fcntl.LockFile(path, fcntl.LockOptions{})
	if err != nil {
		t.Fatalf("LockFile(%q): %v", path, err)
	}
	defer lock1.Close()

	_, err = fcntl.LockFile(path, fcntl.LockOptions{Timeout: 50 * time.Millisecond})
	if !errors.Is(err, fcntl.ErrWouldBlock) {
		t.Fatalf("LockFile(%q, 50ms): err=%v, want %v", path, err, fcntl.ErrWouldBlock)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("LockFile(%q, 50ms): err=%q, want substring %q", path, err.Error(), "timed out")
	}
}

func Test_LockFile_Returns_ErrInvalidInput_When_Timeout_Negative(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lock")

	_, err := fcntl.LockFile(path, fcntl.LockOptions{Timeout: -time.Second})
	if !errors.Is(err, errno.ErrInvalidInput) {
		t.Fatalf("LockFile(%q, -1s): err=%v, want %v", path, err, errno.ErrInvalidInput)
	}
}

func Test_LockFile_Shared_Allows_Multiple_Readers_And_Blocks_Writer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lock")

	r1, err := fcntl.LockFile(path, fcntl.LockOptions{Shared: true})
	if err != nil {
		t.Fatalf("LockFile(%q, shared): %v", path, err)
	}
	defer r1.Close()

	r2, err := fcntl.LockFile(path, fcntl.LockOptions{Shared: true})
	if err != nil {
		t.Fatalf("LockFile(%q, shared) second: %v", path, err)
	}
	defer r2.Close()

	_, err = fcntl.TryLockFile(path, false)
	if !errors.Is(err, fcntl.ErrWouldBlock) {
		t.Fatalf("TryLockFile(%q) while read-locked: err=%v, want %v", path, err, fcntl.ErrWouldBlock)
	}
}

func Test_LockFile_Shared_Can_Lock_A_ReadOnly_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lock")

	if err := os.WriteFile(path, []byte("x"), 0o444); err != nil {
		t.Fatalf("setup WriteFile(%q): %v", path, err)
	}

	lock, err := fcntl.LockFile(path, fcntl.LockOptions{Shared: true})
	if err != nil {
		t.Fatalf("LockFile(%q, shared): %v", path, err)
	}
	defer lock.Close()
}

func Test_LockFile_Creates_Parent_Directories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "lock")

	lock, err := fcntl.LockFile(path, fcntl.LockOptions{})
	if err != nil {
		t.Fatalf("LockFile(%q): %v", path, err)
	}

	if lock.Path() != path {
		t.Fatalf("Path()=%q, want %q", lock.Path(), path)
	}

	if !lock.FD().Valid() {
		t.Fatalf("FD()=%v, want valid descriptor", lock.FD())
	}

	if err := lock.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	if err := lock.Close(); err != nil {
		t.Fatalf("second Close(): %v", err)
	}
}

func Test_LockFile_Waits_Until_Holder_Releases(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lock")

	lock1, err := fcntl.LockFile(path, fcntl.LockOptions{})
	if err != nil {
		t.Fatalf("LockFile(%q): %v", path, err)
	}

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = lock1.Close()
	}()

	lock2, err := fcntl.LockFile(path, fcntl.LockOptions{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("LockFile(%q, 5s) after release: %v", path, err)
	}

	_ = lock2.Close()
}

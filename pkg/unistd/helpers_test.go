package unistd_test

import (
	"sync"
	"testing"
)

// Tests that fork, wait, create inheritable descriptors or change the working
// directory share process-wide state and run one at a time.
var processMu sync.Mutex

func serialize(t *testing.T) {
	t.Helper()

	processMu.Lock()
	t.Cleanup(processMu.Unlock)
}

//go:build !(linux || freebsd)

package cli

import "fmt"

func runChild(_ *IO, _ childSpec) (childResult, error) {
	return childResult{}, fmt.Errorf("%w: running child processes", ErrUnsupported)
}

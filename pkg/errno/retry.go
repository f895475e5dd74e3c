package errno

import "errors"

// maxEINTRRetries caps retry loops so a signal storm cannot spin a caller
// forever. Go's own os package retries without a cap.
const maxEINTRRetries = 10000

// RetryEINTR calls fn until it returns something other than EINTR, at most
// 10000 times, and returns the last error.
//
// EINTR means a signal arrived before a blocking call could complete. Whether
// the call should simply be restarted depends on the caller (a timeout may
// have fired, a shutdown may have been requested), so retrying is never done
// implicitly.
func RetryEINTR(fn func() error) error {
	var err error
	for range maxEINTRRetries {
		err = fn()
		if err == nil || !errors.Is(err, EINTR) {
			return err
		}
	}

	return err
}

// RetryEINTRValue is [RetryEINTR] for calls that also produce a value.
func RetryEINTRValue[T any](fn func() (T, error)) (T, error) {
	var (
		v   T
		err error
	)

	for range maxEINTRRetries {
		v, err = fn()
		if err == nil || !errors.Is(err, EINTR) {
			return v, err
		}
	}

	return v, err
}

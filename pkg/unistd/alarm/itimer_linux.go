package alarm

import "golang.org/x/sys/unix"

func setitimer(value unix.Timeval) (unix.Timeval, error) {
	old, err := unix.Setitimer(unix.ItimerReal, unix.Itimerval{Value: value})
	if err != nil {
		return unix.Timeval{}, err
	}

	return old.Value, nil
}

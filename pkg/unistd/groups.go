//go:build linux || dragonfly || freebsd || netbsd || openbsd

package unistd

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"slices"
	"strconv"
	"strings"
	"syscall"
)

// Setgroups replaces the supplementary group list. It requires privilege
// (EPERM otherwise).
//
// On Linux the kernel keeps credentials per thread; the change is applied to
// every thread of the process, as glibc does.
func Setgroups(groups []Gid) error {
	raw := make([]int, len(groups))
	for i, g := range groups {
		raw[i] = int(g)
	}

	return syscall.Setgroups(raw)
}

// Getgrouplist returns group followed by every group that lists userName as a
// member in the group database. The user's primary group from the password
// database is included only when it equals group or lists userName itself.
// An unknown user yields just group.
func Getgrouplist(userName string, group Gid) ([]Gid, error) {
	u, err := user.Lookup(userName)
	if err != nil {
		var unknown user.UnknownUserError
		if errors.As(err, &unknown) {
			return []Gid{group}, nil
		}

		return nil, err
	}

	ids, err := u.GroupIds()
	if err != nil {
		return nil, err
	}

	primary, err := parseGid(u.Gid)
	if err != nil {
		return nil, err
	}

	listed := primary == group
	if !listed {
		listed, err = groupListsMember(groupFile, u.Gid, userName)
		if err != nil {
			return nil, err
		}
	}

	return collectGroups(group, ids, primary, listed), nil
}

var groupFile = "/etc/group"

// collectGroups builds the list for Getgrouplist. primary is dropped from ids
// unless listed.
func collectGroups(group Gid, ids []string, primary Gid, listed bool) []Gid {
	out := []Gid{group}
	seen := map[Gid]bool{group: true}

	for _, s := range ids {
		g, err := parseGid(s)
		if err != nil || seen[g] {
			continue
		}

		if g == primary && !listed {
			continue
		}

		seen[g] = true
		out = append(out, g)
	}

	return out
}

func parseGid(s string) (Gid, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("group id %q: %w", s, err)
	}

	return Gid(n), nil
}

// groupListsMember reports whether the group(5) entry for gid names userName
// in its member list. A missing file lists nobody.
func groupListsMember(path, gid, userName string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == '+' || line[0] == '-' {
			continue
		}

		// name:passwd:gid:member,member
		fields := strings.Split(line, ":")
		if len(fields) != 4 || fields[2] != gid {
			continue
		}

		if slices.Contains(strings.Split(fields[3], ","), userName) {
			return true, nil
		}
	}

	return false, sc.Err()
}

// Initgroups sets the supplementary groups to [Getgrouplist](userName, group).
func Initgroups(userName string, group Gid) error {
	groups, err := Getgrouplist(userName, group)
	if err != nil {
		return err
	}

	return Setgroups(groups)
}

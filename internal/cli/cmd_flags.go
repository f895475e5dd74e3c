package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/posix/pkg/bitflags"
	"github.com/calvinalkan/posix/pkg/fcntl"
	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/stat"
	"github.com/calvinalkan/posix/pkg/unistd"
	"github.com/calvinalkan/posix/pkg/wait"
)

// flagSet is the type-erased view of one bitflags table.
type flagSet interface {
	kind() string
	format(v uint64) string
	parse(s string) (uint64, error)
	entries() []string
}

type tableSet[T bitflags.Integer] struct {
	table *bitflags.Table[T]
}

func (s tableSet[T]) kind() string { return s.table.Kind() }

func (s tableSet[T]) format(v uint64) string { return s.table.Format(T(v)) }

func (s tableSet[T]) parse(str string) (uint64, error) {
	v, err := s.table.Parse(str)
	return uint64(v), err
}

func (s tableSet[T]) entries() []string {
	flags := s.table.Flags()
	out := make([]string, 0, len(flags))

	for _, f := range flags {
		out = append(out, fmt.Sprintf("%-16s %#x", f.Name, uint64(f.Value)))
	}

	return out
}

func flagSets() map[string]flagSet {
	return map[string]flagSet{
		"oflag":  tableSet[fcntl.OFlag]{fcntl.OFlagTable()},
		"at":     tableSet[fcntl.AtFlags]{fcntl.AtFlagsTable()},
		"fd":     tableSet[fcntl.FdFlag]{fcntl.FdFlagTable()},
		"mode":   tableSet[stat.Mode]{stat.ModeTable()},
		"access": tableSet[unistd.AccessMode]{unistd.AccessModeTable()},
		"sa":     tableSet[signal.SaFlags]{signal.SaFlagsTable()},
		"wait":   tableSet[wait.Flags]{wait.FlagsTable()},
	}
}

// FlagsCmd returns the flags command.
func FlagsCmd() *Command {
	fs := flag.NewFlagSet("flags", flag.ContinueOnError)

	sets := flagSets()
	names := make([]string, 0, len(sets))

	for name := range sets {
		names = append(names, name)
	}

	slices.Sort(names)

	return &Command{
		Flags: fs,
		Usage: "flags <set> [value|names]",
		Short: "Decode or encode a flag set",
		Long: `Translate between numeric flag values and their names on this platform.

  posixctl flags oflag 0x241       prints the names of the set bits
  posixctl flags oflag O_RDWR|O_CREAT
  posixctl flags sa                lists every flag of the set

Sets: ` + strings.Join(names, ", "),
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: choose one of %s", ErrUnknownFlagSet, strings.Join(names, ", "))
			}

			set, ok := sets[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s (choose one of %s)", ErrUnknownFlagSet, args[0], strings.Join(names, ", "))
			}

			if len(args) == 1 {
				for _, line := range set.entries() {
					o.Println(line)
				}

				return nil
			}

			for _, arg := range args[1:] {
				if n, err := strconv.ParseUint(arg, 0, 64); err == nil {
					o.Println(set.format(n))
					continue
				}

				v, err := set.parse(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", set.kind(), err)
				}

				o.Printf("%#x\n", v)
			}

			return nil
		},
	}
}
